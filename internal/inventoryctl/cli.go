// Package inventoryctl implements the inventory command line client. All
// authenticated calls go through an authsdk.Session backed by a token file,
// so concurrent invocations share one rotating refresh token.
package inventoryctl

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/inventory/pkg/authsdk"
)

const (
	DefaultServerURL = "http://localhost:8080"

	usageText = `usage: inventoryctl [flags] <command> [args]

commands:
  signup <username>            create an account and start a session
  login <username>             start a session
  logout                       end the current session
  me                           show the signed-in user
  user <username>              show a public profile
  delete-account               delete the signed-in account
  vendors list                 list your vendors
  vendors add <name>           create a vendor
  vendors rename <id> <name>   rename a vendor
  vendors rm <id>              delete a vendor

flags:
`
)

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("usage")

// CLI runs one command. Zero fields fall back to the process defaults.
type CLI struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Logger *slog.Logger
}

type runner struct {
	cli     *CLI
	session *authsdk.Session
	out     io.Writer
}

// Run parses args (without the program name) and executes the command.
func (c *CLI) Run(ctx context.Context, args []string) error {
	c.defaults()

	fs := flag.NewFlagSet("inventoryctl", flag.ContinueOnError)
	fs.SetOutput(c.Stderr)
	fs.Usage = func() {
		fmt.Fprint(c.Stderr, usageText)
		fs.PrintDefaults()
	}

	server := fs.String("server", c.getenvOr("INVENTORY_URL", DefaultServerURL), "inventory server base URL")
	sessionFile := fs.String("session", c.getenvOr("INVENTORY_SESSION_FILE", ""), "token file (default: <config dir>/inventory/session.json)")
	timeout := fs.Duration("timeout", 30*time.Second, "overall command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return ErrUsage
	}

	path := *sessionFile
	if path == "" {
		var err error
		if path, err = defaultSessionPath(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	r := &runner{
		cli: c,
		session: authsdk.NewSession(
			authsdk.NewClient(*server),
			authsdk.NewFileStore(path),
			authsdk.WithLogger(c.Logger),
		),
		out: c.Stdout,
	}
	return r.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
}

func (c *CLI) defaults() {
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}
	if c.Getenv == nil {
		c.Getenv = os.Getenv
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(c.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
}

func (c *CLI) getenvOr(key, def string) string {
	if v := c.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "inventory", "session.json"), nil
}

func (r *runner) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signup":
		return r.credentials(ctx, args, r.session.Signup, "Signed up as %s\n")
	case "login":
		return r.credentials(ctx, args, r.session.Login, "Logged in as %s\n")
	case "logout":
		if err := wantArgs(args, 0); err != nil {
			return err
		}
		if err := r.session.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "Logged out")
		return nil
	case "me":
		if err := wantArgs(args, 0); err != nil {
			return err
		}
		me, err := r.session.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, me.Username)
		return nil
	case "user":
		if err := wantArgs(args, 1); err != nil {
			return err
		}
		return r.profile(ctx, args[0])
	case "delete-account":
		if err := wantArgs(args, 0); err != nil {
			return err
		}
		me, err := r.session.Me(ctx)
		if err != nil {
			return err
		}
		if err := r.session.DeleteAccount(ctx, me.Username); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Deleted account %s\n", me.Username)
		return nil
	case "vendors":
		return r.vendors(ctx, args)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (r *runner) credentials(
	ctx context.Context,
	args []string,
	op func(ctx context.Context, username, password string) error,
	done string,
) error {
	if err := wantArgs(args, 1); err != nil {
		return err
	}

	password, err := promptPassword(r.cli.Stdin, r.cli.Stderr, "Password: ")
	if err != nil {
		return err
	}
	if err := op(ctx, args[0], password); err != nil {
		return err
	}

	fmt.Fprintf(r.out, done, args[0])
	return nil
}

func (r *runner) profile(ctx context.Context, username string) error {
	p, err := r.session.GetUser(ctx, username)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "username\t%s\n", p.Username)
	fmt.Fprintf(tw, "created\t%s\n", p.CreatedAt.Format(time.RFC3339))
	if p.Self {
		fmt.Fprintln(tw, "self\tyes")
	}
	return tw.Flush()
}

func (r *runner) vendors(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: vendors needs a subcommand", ErrUsage)
	}

	sub, args := args[0], args[1:]
	switch sub {
	case "list", "ls":
		if err := wantArgs(args, 0); err != nil {
			return err
		}
		vendors, err := r.session.ListVendors(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tUPDATED")
		for _, v := range vendors {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", v.ID, v.Name, v.UpdatedAt.Format(time.RFC3339))
		}
		return tw.Flush()

	case "add":
		if err := wantArgs(args, 1); err != nil {
			return err
		}
		v, err := r.session.CreateVendor(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, v.ID)
		return nil

	case "rename":
		if err := wantArgs(args, 2); err != nil {
			return err
		}
		v, err := r.session.UpdateVendor(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "%s\t%s\n", v.ID, v.Name)
		return nil

	case "rm":
		if err := wantArgs(args, 1); err != nil {
			return err
		}
		return r.session.DeleteVendor(ctx, args[0])

	default:
		return fmt.Errorf("%w: unknown vendors subcommand %q", ErrUsage, sub)
	}
}

func wantArgs(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: expected %d argument(s), got %d", ErrUsage, n, len(args))
	}
	return nil
}
