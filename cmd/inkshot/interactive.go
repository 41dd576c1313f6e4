package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/inkshot/internal/drawing"
	"github.com/example/inkshot/internal/script"
	"github.com/example/inkshot/internal/session"
	"github.com/example/inkshot/internal/sink"
)

const interactiveHelp = `steps:    select <tool> | kind draw|text | color <c> | width <slider>
          stroke x,y [x,y...] | undo | clear | cancel
session:  canvas WxH | steps | export [path] | copy | preview <path> | exit`

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

type interactiveCmd struct {
	command
	file          string
	fromClipboard bool
	output        string
	execs         commandList

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	sess *session.Session
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	c := &interactiveCmd{command: newCommand(r, "interactive"), stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	c.fs.StringVar(&c.file, "file", "", "photo to draw on")
	c.fs.BoolVar(&c.fromClipboard, "from-clipboard", false, "draw on the image on the clipboard")
	c.fs.StringVar(&c.output, "output", "", "where export writes without a path (.png, .jpg or .pdf)")
	c.fs.Var(&c.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	c.fs.Usage = usageFunc(c)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if err := checkSource(c, c.file, c.fromClipboard); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *interactiveCmd) Run() error {
	p, err := loadPhoto(c.file, c.fromClipboard)
	if err != nil {
		return err
	}
	c.sess, err = session.New(p, session.WithSelection(c.selection()))
	if err != nil {
		return err
	}
	defer c.sess.Close()

	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := c.executeLine(line)
			if err != nil {
				return fmt.Errorf("%s: %w", line, err)
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(c.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := c.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command against the session. It reports true when
// the session should end.
func (c *interactiveCmd) executeLine(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	fields := strings.Fields(line)
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(c.stdout, interactiveHelp)
	case "canvas":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: canvas WxH")
		}
		sz, err := parseSize(args[0])
		if err != nil {
			return false, err
		}
		c.sess.ObserveCanvasSize(sz)
	case "steps":
		sc := script.Record(c.sess.Strokes(), c.sess.CanvasSize())
		for _, st := range sc.Steps {
			fmt.Fprintln(c.stdout, st.Line())
		}
	case "export":
		if len(args) > 1 {
			return false, fmt.Errorf("usage: export [path]")
		}
		path := c.output
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			path = c.defaultOutput(c.sess.ID)
		}
		dst, err := sink.ForPath(path)
		if err != nil {
			return false, err
		}
		return false, c.save(c.notifying(dst))
	case "copy":
		return false, c.save(c.notifying(sink.Clipboard{}))
	case "preview":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: preview <path>")
		}
		dst, err := sink.ForPath(args[0])
		if err != nil {
			return false, err
		}
		img, err := c.sess.PreviewAt(drawing.Size{})
		if err != nil {
			return false, err
		}
		if err := dst.Save(context.Background(), img); err != nil {
			return false, fmt.Errorf("save preview: %w", err)
		}
		fmt.Fprintf(c.stdout, "saved %s\n", dst)
	default:
		st, err := script.ParseLine(line)
		if err != nil {
			return false, err
		}
		return false, script.Apply(c.sess, st)
	}
	return false, nil
}

func (c *interactiveCmd) save(dst sink.Sink) error {
	if err := c.sess.ExportTo(context.Background(), dst); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "saved %s\n", dst)
	return nil
}
