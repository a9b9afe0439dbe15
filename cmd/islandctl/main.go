// Command islandctl is a terminal client for the travel API. It keeps the
// identity token on disk between runs.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/chandrabs25/Andaman-travel-website/internal/auth"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
	"github.com/chandrabs25/Andaman-travel-website/internal/session"
	"github.com/chandrabs25/Andaman-travel-website/pkg/config"
)

const usage = `usage: islandctl [--api URL] [--token-dir DIR] <command> [flags]

commands:
  register   create an account (--name, --email, --password)
  login      sign in and store the identity token (--email, --password)
  logout     forget the stored token
  whoami     print the signed-in identity
  bookings   list your bookings
  book       book a package (--package, --people, --start, --end)
`

var errUsage = errors.New("invalid usage")

type cli struct {
	out     io.Writer
	session *session.Provider
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "islandctl: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("islandctl", "production")

	global := pflag.NewFlagSet("islandctl", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	apiURL := global.String("api", cfg.Client.BaseURL, "API base URL")
	tokenDir := global.String("token-dir", cfg.Client.TokenDir, "directory holding the identity token")
	if err := global.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if global.NArg() == 0 {
		global.Usage()
		os.Exit(2)
	}

	dir, err := resolveTokenDir(*tokenDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "islandctl: %v\n", err)
		os.Exit(1)
	}
	store, err := session.NewFileTokenStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "islandctl: %v\n", err)
		os.Exit(1)
	}

	verifier, err := tokenVerifier(&cfg.Auth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "islandctl: %v\n", err)
		os.Exit(1)
	}
	c := &cli{out: os.Stdout, session: session.NewProvider(*apiURL, store, verifier)}
	c.session.Restore()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := c.run(ctx, global.Arg(0), global.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "islandctl: %v\n", err)
		os.Exit(1)
	}
}

// tokenVerifier prefers the published public key. Without one it derives
// the key from the API secret, which only suits a local development setup.
func tokenVerifier(cfg *config.AuthConfig) (*auth.TokenManager, error) {
	if cfg.PublicKey == "" {
		return auth.NewTokenVerifier(auth.NewTokenManager(cfg.JWTSecret).PublicKey()), nil
	}
	key, err := auth.ParsePublicKey(cfg.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("AUTH_PUBLIC_KEY: %w", err)
	}
	return auth.NewTokenVerifier(key), nil
}

func resolveTokenDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(base, "islandctl"), nil
}

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		return c.register(ctx, args)
	case "login":
		return c.login(ctx, args)
	case "logout":
		c.session.Logout()
		fmt.Fprintln(c.out, "signed out")
		return nil
	case "whoami":
		return c.whoami()
	case "bookings":
		return c.bookings(ctx)
	case "book":
		return c.book(ctx, args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("register", pflag.ContinueOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *name == "" || *email == "" || *password == "" {
		return fmt.Errorf("%w: --name, --email and --password are required", errUsage)
	}

	if !c.session.Register(ctx, *name, *email, *password) {
		return errors.New("registration failed")
	}
	fmt.Fprintf(c.out, "registered %s, now run: islandctl login --email %s\n", *email, *email)
	return nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("%w: --email and --password are required", errUsage)
	}

	if !c.session.Login(ctx, *email, *password) {
		return errors.New("login failed")
	}
	return c.whoami()
}

func (c *cli) whoami() error {
	user, ok := c.session.CurrentUser()
	if !ok {
		return errors.New("not signed in")
	}
	fmt.Fprintf(c.out, "%s <%s> id=%d role=%s\n", user.Name, user.Email, user.ID, user.Role)
	return nil
}

func (c *cli) bookings(ctx context.Context) error {
	req, err := c.session.NewRequest(ctx, http.MethodGet, "/api/bookings", nil)
	if err != nil {
		return err
	}
	var bookings []entities.Booking
	ok, msg, err := c.session.Do(req, &bookings)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(msg)
	}
	if len(bookings) == 0 {
		fmt.Fprintln(c.out, "no bookings")
		return nil
	}
	return printJSON(c.out, bookings)
}

func (c *cli) book(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("book", pflag.ContinueOnError)
	pkg := fs.Int64("package", 0, "package id")
	people := fs.Int("people", 1, "number of travellers")
	start := fs.String("start", "", "start date, YYYY-MM-DD")
	end := fs.String("end", "", "end date, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	body := map[string]any{
		"total_people": fmt.Sprint(*people),
		"start_date":   *start,
		"end_date":     *end,
	}
	if *pkg > 0 {
		body["package_id"] = *pkg
	}
	req, err := c.session.NewRequest(ctx, http.MethodPost, "/api/bookings", body)
	if err != nil {
		return err
	}
	var created struct {
		ID int64 `json:"id"`
	}
	ok, msg, err := c.session.Do(req, &created)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(msg)
	}
	fmt.Fprintf(c.out, "booking %d created\n", created.ID)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
