package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/edaflow/internal/ctxlog"
	"github.com/vk/edaflow/internal/registry"
)

// Run executes one pass of the application: either doc printing or the
// configuration of the selected tool flow.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.DocTool != "" {
		return a.printDoc(a.config.DocTool)
	}

	tool := a.config.Tool
	if tool == "" {
		tool = a.design.Tool
	}
	if tool == "" {
		return errors.New("no tool selected: set one in the project description or pass -tool")
	}

	factory, err := a.registry.Factory(tool)
	if err != nil {
		return err
	}
	adapter, err := factory(a.design, a.config.WorkRoot, a.logger)
	if err != nil {
		return fmt.Errorf("failed to build %s adapter: %w", tool, err)
	}

	if len(a.config.ToolArgs) > 0 {
		checker, ok := adapter.(registry.ArgChecker)
		if !ok {
			return fmt.Errorf("tool %s accepts no extra command line arguments", tool)
		}
		if err := checker.CheckArgs(a.config.ToolArgs); err != nil {
			return err
		}
	}

	a.logger.Info("Configuring tool flow.", "tool", tool, "design", a.design.Name, "work_root", a.config.WorkRoot)
	if err := adapter.Configure(ctx); err != nil {
		return fmt.Errorf("failed to configure %s: %w", tool, err)
	}
	a.logger.Info("Tool flow configured.", "tool", tool)
	return nil
}

// printDoc writes the option documentation of one tool to the output writer.
func (a *App) printDoc(tool string) error {
	doc, ok := a.registry.Doc(tool)
	if !ok {
		return fmt.Errorf("unknown tool %q (known tools: %v)", tool, a.registry.ToolNames())
	}

	fmt.Fprintf(a.outW, "%s\n\n%s\n", tool, doc.Description)
	if len(doc.Members) > 0 {
		fmt.Fprintf(a.outW, "\nOptions:\n")
		for _, m := range doc.Members {
			fmt.Fprintf(a.outW, "  %-26s %-8s %s\n", m.Name, m.Type, m.Desc)
		}
	}
	if len(doc.Lists) > 0 {
		fmt.Fprintf(a.outW, "\nList options:\n")
		for _, l := range doc.Lists {
			fmt.Fprintf(a.outW, "  %-26s %-8s %s\n", l.Name, l.Type, l.Desc)
		}
	}
	return nil
}
