// Package audio plays the optional chime when the widget rotates on its
// own. WAV, OGG and MP3 files are decoded with beep and cached.
package audio
