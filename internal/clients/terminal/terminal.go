// Package terminal is the interactive front end: it reads commands from
// stdin, feeds them to the message service and prints the replies.
// Passwords for /register and /login are read with echo disabled.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"max.ks1230/finance-tracker/internal/model/messages"
)

const prompt = "> "

var passwordCommands = map[string]struct{}{
	"/register": {},
	"/login":    {},
}

type Client struct {
	in  *bufio.Scanner
	out io.Writer
}

func New() *Client {
	return &Client{
		in:  bufio.NewScanner(os.Stdin),
		out: os.Stdout,
	}
}

// SendMessage prints a reply. The userID is unused on a terminal.
func (c *Client) SendMessage(text string, _ int64) error {
	_, err := fmt.Fprintln(c.out, text)
	return err
}

// Run loops until stdin closes, /quit, or ctx is cancelled.
func (c *Client) Run(ctx context.Context, msgModel *messages.Service) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Fprint(c.out, prompt)
		if !c.in.Scan() {
			return c.in.Err()
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "/quit" || line == "/exit" {
			fmt.Fprintln(c.out, "Bye!")
			return nil
		}

		line, err := c.withPassword(line)
		if err != nil {
			return err
		}

		err = msgModel.HandleIncomingMessage(ctx, messages.Message{Text: line})
		if err != nil {
			fmt.Fprintln(c.out, "Something went wrong, see the logs")
		}
	}
}

// withPassword prompts for a hidden password when a credential command was
// entered with only a username, so the password never shows on screen.
func (c *Client) withPassword(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return line, nil
	}
	if _, ok := passwordCommands[fields[0]]; !ok {
		return line, nil
	}

	fmt.Fprint(c.out, "Enter password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(c.out)
	if err != nil {
		return "", err
	}
	return line + " " + string(password), nil
}
