package main

import (
	"fmt"
	"os"

	"github.com/example/inkshot/internal/config"
)

type configCmd struct {
	command
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	c := &configCmd{command: newCommand(r, "config")}
	c.fs.Usage = usageFunc(c)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}
	switch sub := args[0]; sub {
	case "print":
		fmt.Print(c.config.String())
		return nil
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", sub)
	}
}

func (c *configCmd) runSave() error {
	loader := config.NewLoader(version, configPathOverride)
	path, err := loader.SavePath()
	if err != nil {
		return err
	}
	if err := config.Save(c.config, path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}
