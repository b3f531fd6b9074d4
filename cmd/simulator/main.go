package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-sim/internal/api/registry"
	"github.com/spec-kit/helpdesk-sim/internal/clock"
	"github.com/spec-kit/helpdesk-sim/internal/config"
	"github.com/spec-kit/helpdesk-sim/internal/events"
	"github.com/spec-kit/helpdesk-sim/internal/observability"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
	"github.com/spec-kit/helpdesk-sim/internal/repository"
	"github.com/spec-kit/helpdesk-sim/internal/scenario"
	"github.com/spec-kit/helpdesk-sim/internal/service"
	"github.com/spec-kit/helpdesk-sim/internal/worker"
	"github.com/spec-kit/helpdesk-sim/pkg/util"
)

func main() {
	cmd := &cli.Command{
		Name:  "simulator",
		Usage: "Deterministic in-process helpdesk API simulator",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "state",
				Usage: "State snapshot path (overrides STATE_PATH)",
			},
			&cli.BoolFlag{
				Name:  "no-seed",
				Usage: "Start fresh states empty instead of seeded",
			},
		},
		Commands: []*cli.Command{
			opsCommand(),
			callCommand(),
			scenarioCommand(),
			stateCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// simApp is the fully wired simulator behind one state file.
type simApp struct {
	cfg      *config.Config
	logger   *zap.Logger
	state    *persistence.State
	registry *registry.Registry
}

func buildApp(c *cli.Command) (*simApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if path := c.String("state"); path != "" {
		cfg.State.Path = path
	}
	if c.Bool("no-seed") {
		cfg.State.Seed = false
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	state := persistence.NewState()
	if _, statErr := os.Stat(cfg.State.Path); statErr == nil {
		if err := state.Load(cfg.State.Path); err != nil {
			return nil, fmt.Errorf("load state: %w", err)
		}
	} else if cfg.State.Seed {
		persistence.Seed(state)
	}

	clk := clock.Real()
	dispatcher := events.NewInMemoryDispatcher()

	ticketRepo := repository.NewTicketRepository(state)
	auditRepo := repository.NewAuditRepository(state)
	commentRepo := repository.NewCommentRepository(state)
	userRepo := repository.NewUserRepository(state)
	attachmentRepo := repository.NewAttachmentRepository(state)
	uploadRepo := repository.NewUploadRepository(state)
	composer := service.NewAuditComposer(state.IDs)

	services := registry.Services{
		Tickets: service.NewTicketService(service.TicketDependencies{
			State:       state,
			TicketRepo:  ticketRepo,
			AuditRepo:   auditRepo,
			CommentRepo: commentRepo,
			UploadRepo:  uploadRepo,
			Composer:    composer,
			Clock:       clk,
			Dispatcher:  dispatcher,
		}),
		Audits: service.NewAuditService(service.AuditDependencies{
			State:      state,
			TicketRepo: ticketRepo,
			AuditRepo:  auditRepo,
			PerPageCap: cfg.Paging.PerPageCap,
		}),
		Comments: service.NewCommentService(service.CommentDependencies{
			State:          state,
			TicketRepo:     ticketRepo,
			CommentRepo:    commentRepo,
			UserRepo:       userRepo,
			AttachmentRepo: attachmentRepo,
			Clock:          clk,
			Dispatcher:     dispatcher,
			PerPageCap:     cfg.Paging.PerPageCap,
		}),
		Uploads: service.NewUploadService(service.UploadDependencies{
			State:          state,
			AttachmentRepo: attachmentRepo,
			UploadRepo:     uploadRepo,
			Clock:          clk,
		}),
		Users: service.NewUserService(service.UserDependencies{
			State:      state,
			UserRepo:   userRepo,
			Clock:      clk,
			Dispatcher: dispatcher,
		}),
		State: state,
	}

	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	reg := registry.New(logger, observability.NewMetrics())
	registry.RegisterOperations(reg, services)

	logger.Debug("simulator ready",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("state_path", cfg.State.Path))

	return &simApp{cfg: cfg, logger: logger, state: state, registry: reg}, nil
}

func (a *simApp) persist() error {
	if err := a.state.Save(a.cfg.State.Path); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func opsCommand() *cli.Command {
	return &cli.Command{
		Name:  "ops",
		Usage: "List every operation the simulator exposes",
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := buildApp(c)
			if err != nil {
				return err
			}
			defer a.logger.Sync() //nolint:errcheck

			for _, op := range a.registry.Operations() {
				fmt.Printf("%-22s %s\n", op.Name, op.Description)
			}
			return nil
		},
	}
}

func callCommand() *cli.Command {
	return &cli.Command{
		Name:      "call",
		Usage:     "Invoke one operation with JSON arguments",
		ArgsUsage: "<op> [args]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "args",
				Usage: "JSON argument object",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.Args().First()
			if name == "" {
				return fmt.Errorf("operation name required, see: simulator ops")
			}
			args := c.String("args")
			if args == "" {
				args = c.Args().Get(1)
			}

			a, err := buildApp(c)
			if err != nil {
				return err
			}
			defer a.logger.Sync() //nolint:errcheck

			result, callErr := a.registry.Call(ctx, name, json.RawMessage(args))
			if callErr != nil {
				if err := printJSON(registry.ErrorBody(callErr)); err != nil {
					return err
				}
				return cli.Exit("", 1)
			}
			if err := a.persist(); err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func scenarioCommand() *cli.Command {
	return &cli.Command{
		Name:      "scenario",
		Usage:     "Run a YAML scenario through the registry",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("scenario file required")
			}
			sc, err := scenario.Load(path)
			if err != nil {
				return err
			}

			a, err := buildApp(c)
			if err != nil {
				return err
			}
			defer a.logger.Sync() //nolint:errcheck

			report, runErr := scenario.NewRunner(a.registry, a.logger).Run(ctx, sc)
			for i, step := range report.Results {
				status := "ok"
				if step.Err != nil {
					status = util.CodeOf(step.Err)
					if sc.Steps[i].WantError == status {
						status += " (declared)"
					}
				}
				fmt.Printf("%2d. %-22s %s\n", i+1, step.Op, status)
			}
			if runErr != nil {
				return runErr
			}
			if err := a.persist(); err != nil {
				return err
			}
			fmt.Printf("scenario %q passed (%d steps)\n", report.Scenario, len(report.Results))
			return nil
		},
	}
}

func stateCommand() *cli.Command {
	return &cli.Command{
		Name:  "state",
		Usage: "Export or import the state snapshot",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Write the current snapshot to stdout or a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Destination file (default stdout)",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					a, err := buildApp(c)
					if err != nil {
						return err
					}
					defer a.logger.Sync() //nolint:errcheck

					data, err := a.state.Export()
					if err != nil {
						return err
					}
					if out := c.String("out"); out != "" {
						return os.WriteFile(out, data, 0o644)
					}
					fmt.Println(string(data))
					return nil
				},
			},
			{
				Name:      "import",
				Usage:     "Replace the state with a snapshot file",
				ArgsUsage: "<file>",
				Action: func(ctx context.Context, c *cli.Command) error {
					path := c.Args().First()
					if path == "" {
						return fmt.Errorf("snapshot file required")
					}
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}

					a, err := buildApp(c)
					if err != nil {
						return err
					}
					defer a.logger.Sync() //nolint:errcheck

					if err := a.state.Import(data); err != nil {
						return err
					}
					return a.persist()
				},
			},
		},
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
