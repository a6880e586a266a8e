package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/everinsight/discprofile/internal/access"
	"github.com/everinsight/discprofile/internal/bank"
	"github.com/everinsight/discprofile/internal/coach"
	"github.com/everinsight/discprofile/internal/handler"
	appI18n "github.com/everinsight/discprofile/internal/i18n"
	"github.com/everinsight/discprofile/internal/model"
	"github.com/everinsight/discprofile/internal/notify"
	"github.com/everinsight/discprofile/internal/sessionlog"
	"github.com/everinsight/discprofile/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "discprofile",
		Short: "DISC self-assessment server",
	}

	serve := serveCmd()
	root.AddCommand(serve, exportCmd(), validateCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `discprofile --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP questionnaire server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("db", "discprofile.db", "SQLite database path (profiles, facilitators)")
	f.String("sessions", "disc_forced_sessions.jsonl", "Append-only session log path")
	f.StringP("lang", "l", "fr", "UI language (fr, en)")
	f.String("base-path", "", "URL prefix for sub-path deployments (e.g. /fr)")
	f.Bool("secure-cookies", true, "Set Secure flag on cookies")
	f.Bool("require-token", false, "Gate pages behind the access webhook")
	f.String("access-url", "", "Access validation webhook URL")
	f.String("access-secret", "", "Access webhook shared secret")
	f.String("portal-url", "", "Where denied visitors can request access")
	f.String("notify-url", "", "Event notification webhook URL (empty disables)")
	f.String("notify-secret", "", "Notification webhook shared secret")
	f.String("coach-url", "", "OpenAI-compatible API base URL for the coach helper (empty disables)")
	f.String("coach-key", "", "API key for the coach helper")
	f.String("coach-model", "llama3.2", "Model name for the coach helper")
	f.String("admin-password", "", "Initial facilitator password (or set DISCPROFILE_ADMIN_PASSWORD)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all recorded sessions as JSON",
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.String("sessions", "disc_forced_sessions.jsonl", "Append-only session log path")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the item bank authoring invariants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bank.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "item bank OK: %d items, balanced dimensions\n", bank.Size)
			return nil
		},
	}
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("DISCPROFILE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("discprofile")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/discprofile")
	v.AddConfigPath("/etc/discprofile")
	v.AddConfigPath("/data")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	// The bank is authored data; refuse to serve a broken one.
	if err := bank.Validate(); err != nil {
		return fmt.Errorf("item bank: %w", err)
	}

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := seedFacilitator(db, v.GetString("admin-password")); err != nil {
		return fmt.Errorf("seed facilitator: %w", err)
	}

	sessions, err := sessionlog.Open(v.GetString("sessions"))
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer sessions.Close()

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	var validator access.Validator = access.AllowAll{}
	if v.GetBool("require-token") {
		url := v.GetString("access-url")
		if url == "" {
			return fmt.Errorf("--require-token needs --access-url")
		}
		validator = access.NewWebhookValidator(url, v.GetString("access-secret"))
	}

	var notifier notify.Notifier = notify.Nop{}
	if url := v.GetString("notify-url"); url != "" {
		notifier = notify.NewWebhook(url, v.GetString("notify-secret"))
	}

	var coachClient *coach.Client
	if url := v.GetString("coach-url"); url != "" {
		coachClient = coach.New(url, v.GetString("coach-key"), v.GetString("coach-model"))
		if err := coachClient.Ping(cmd.Context()); err != nil {
			slog.Warn("coach endpoint unreachable, fallback text will be used", "error", err)
		}
	}

	// Normalize base path.
	basePath := strings.TrimRight(v.GetString("base-path"), "/")
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}

	cfg := model.AppConfig{
		BasePath:      basePath,
		SecureCookies: v.GetBool("secure-cookies"),
		PortalURL:     v.GetString("portal-url"),
		RequireToken:  v.GetBool("require-token"),
	}

	h := handler.New(db, sessions, validator, notifier, coachClient, cfg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))

	if basePath != "" {
		r.Route(basePath, func(sub chi.Router) {
			sub.Use(h.BasePathMiddleware)
			h.Routes(sub)
		})
		r.Get(basePath, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, basePath+"/", http.StatusMovedPermanently)
		})
	} else {
		r.Use(h.BasePathMiddleware)
		h.Routes(r)
	}

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"lang", lang,
		"sessions", v.GetString("sessions"),
		"require_token", cfg.RequireToken,
		"base_path", basePath,
	)
	return http.ListenAndServe(addr, r)
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	sessions, err := sessionlog.Open(v.GetString("sessions"))
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer sessions.Close()

	records, err := sessions.All()
	if err != nil {
		return fmt.Errorf("read sessions: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	outPath := v.GetString("output")
	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// Ensure trailing newline.
	_, _ = fmt.Fprintln(w)

	return nil
}

func seedFacilitator(db *store.Store, password string) error {
	count, err := db.FacilitatorCount()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		slog.Info("no facilitator password set, admin views stay locked")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash facilitator password: %w", err)
	}

	if _, err := db.CreateFacilitator("admin", string(hash)); err != nil {
		return fmt.Errorf("create facilitator: %w", err)
	}

	slog.Info("seeded default facilitator", "username", "admin")
	return nil
}
