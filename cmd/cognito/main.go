package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-cognito-bridge/bridge"
	"github.com/jrsteele09/go-cognito-bridge/internal/config"
	"github.com/jrsteele09/go-cognito-bridge/keychain"
	"github.com/jrsteele09/go-cognito-bridge/keychain/redisstore"
	"github.com/jrsteele09/go-cognito-bridge/mainloop"
	"github.com/jrsteele09/go-cognito-bridge/userpool/cognito"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// The run loop must own the main thread.
func init() {
	runtime.LockOSThread()
}

type flags struct {
	poolID     string
	clientID   string
	secret     string
	region     string
	endpoint   string
	logLevel   string
	forceAlias bool
	quiet      bool
	attributes map[string]string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	f, positional, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return errors.New("a command is required, see --help")
	}

	c, err := config.LoadWithOverrides(map[string]string{
		config.EnvUserPoolID:   f.poolID,
		config.EnvClientID:     f.clientID,
		config.EnvClientSecret: f.secret,
		config.EnvRegion:       f.region,
		config.EnvEndpoint:     f.endpoint,
		config.EnvLogLevel:     f.logLevel,
	})
	if err != nil {
		return err
	}

	logger := newLogger(c.GetLogLevel())
	if !f.quiet {
		displayAppname(c.GetAppName())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openKeychain(c, c.GetClientID(), logger)
	if err != nil {
		return err
	}

	poolOptions := []cognito.Option{
		cognito.WithKeychain(store),
		cognito.WithLogger(logger),
	}
	if c.GetEndpoint() != "" {
		poolOptions = append(poolOptions, cognito.WithEndpoint(c.GetEndpoint()))
	}
	if c.GetVerifyIDToken() {
		verifier, err := cognito.NewIDTokenVerifier(ctx, c.GetRegion(), c.GetUserPoolID(), c.GetClientID())
		if err != nil {
			return err
		}
		poolOptions = append(poolOptions, cognito.WithIDTokenVerifier(verifier))
	}

	loop := mainloop.NewRunLoop()
	adapter, err := bridge.Open(bridge.Config{
		UserPoolID: c.GetUserPoolID(),
		ClientID:   c.GetClientID(),
		Secret:     c.GetClientSecret(),
		Region:     c.GetRegion(),
	}, loop, poolOptions, bridge.WithLogger(logger))
	if err != nil {
		return err
	}

	// Commands wait on their promises off the main thread while the main
	// thread serves the run loop that settles them.
	loopCtx, stopLoop := context.WithCancel(ctx)
	var (
		result any
		cmdErr error
		done   = make(chan struct{})
	)
	go func() {
		defer close(done)
		defer stopLoop()
		result, cmdErr = execute(ctx, adapter, positional[0], positional[1:], f)
	}()
	if err := loop.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	<-done
	if cmdErr != nil {
		return cmdErr
	}
	return printResult(result)
}

func parseFlags(args []string) (*flags, []string, error) {
	f := &flags{}
	fs := pflag.NewFlagSet("cognito", pflag.ContinueOnError)
	fs.StringVar(&f.poolID, "pool-id", "", "user pool id (env "+config.EnvUserPoolID+")")
	fs.StringVar(&f.clientID, "client-id", "", "app client id (env "+config.EnvClientID+")")
	fs.StringVar(&f.secret, "secret", "", "app client secret (env "+config.EnvClientSecret+")")
	fs.StringVar(&f.region, "region", "", "region, e.g. US_EAST_1 (env "+config.EnvRegion+")")
	fs.StringVar(&f.endpoint, "endpoint", "", "override the service endpoint (env "+config.EnvEndpoint+")")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (env "+config.EnvLogLevel+")")
	fs.BoolVar(&f.forceAlias, "force-alias", false, "confirm: force alias creation")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "do not print the banner")
	fs.StringToStringVarP(&f.attributes, "attr", "a", nil, "signup: user attribute name=value, repeatable")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: cognito [flags] <command> [args]")
		fmt.Fprintln(os.Stderr, commandsUsage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

// openKeychain prefers Redis, then an encrypted directory, then memory. A
// memory keychain forgets the session when the process exits.
func openKeychain(c config.KeychainConfig, clientID string, logger zerolog.Logger) (keychain.Store, error) {
	if addr := c.GetRedisAddr(); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		return redisstore.New(rdb, "cognito-bridge", 0), nil
	}
	if passphrase := c.GetKeychainPassphrase(); passphrase != "" {
		key := keychain.DeriveKey([]byte(passphrase), []byte(clientID))
		return keychain.NewFileStore(c.GetKeychainDir(), key)
	}
	logger.Warn().Msg("no keychain configured, sessions last for this invocation only; set " +
		config.EnvKeychainPassphrase + " or " + config.EnvRedisAddr + " to keep them between commands")
	return keychain.NewMemoryStore(), nil
}

func printResult(result any) error {
	if result == nil {
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
