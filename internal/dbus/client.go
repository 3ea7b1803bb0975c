package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Client talks to a running widget.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Dial connects to the session bus and checks that a widget is running.
func Dial() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	var owned bool
	if err := conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, BusName).Store(&owned); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to query bus name: %w", err)
	}
	if !owned {
		conn.Close()
		return nil, ErrNotRunning
	}

	return &Client{conn: conn, obj: conn.Object(BusName, Path)}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Next advances the widget.
func (c *Client) Next() error {
	return c.call("Next")
}

// Previous steps the widget back.
func (c *Client) Previous() error {
	return c.call("Previous")
}

// Status returns the displayed line and the next rotation time.
func (c *Client) Status() (*Status, error) {
	var (
		index, count uint32
		text         string
		next         int64
	)
	if err := c.obj.Call(Interface+".Current", 0).Store(&index, &count, &text); err != nil {
		return nil, fmt.Errorf("failed to call Current: %w", err)
	}
	if err := c.obj.Call(Interface+".NextRotation", 0).Store(&next); err != nil {
		return nil, fmt.Errorf("failed to call NextRotation: %w", err)
	}
	return &Status{
		Index:        int(index),
		Count:        int(count),
		Text:         text,
		NextRotation: timeOrZero(next),
	}, nil
}

func (c *Client) call(method string) error {
	if err := c.obj.Call(Interface+"."+method, 0).Err; err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	return nil
}
