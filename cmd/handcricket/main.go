// Command handcricket is an operator and player CLI for the Hand Cricket
// contract: it can deploy instances, open sessions, play the commit/reveal
// rounds and manage the admin and hub settings.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"
	"os"

	"github.com/stellar/go/keypair"
	"github.com/urfave/cli"

	"github.com/stellar-game-studio/handcricket-go/config"
	"github.com/stellar-game-studio/handcricket-go/handcricket"
	"github.com/stellar-game-studio/handcricket-go/proof"
	"github.com/stellar-game-studio/handcricket-go/rpc"
)

func main() {
	app := cli.NewApp()
	app.Name = "handcricket"
	app.Usage = "play and operate the Hand Cricket contract"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Value: "config.yml", Usage: "path to the configuration file"},
	}
	app.Commands = []cli.Command{
		{
			Name:  "deploy",
			Usage: "create a new contract instance from an installed wasm",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "admin", Usage: "admin address (defaults to the configured identity)"},
				cli.StringFlag{Name: "hub", Required: true, Usage: "game hub contract address"},
				cli.StringFlag{Name: "wasm-hash", Required: true, Usage: "hex hash of the installed contract code"},
			},
			Action: cmdDeploy,
		},
		{
			Name:  "game",
			Usage: "fetch a session's current state",
			Flags: []cli.Flag{
				cli.UintFlag{Name: "session", Required: true, Usage: "session id"},
			},
			Action: cmdGame,
		},
		{
			Name:  "start",
			Usage: "open a new session against another player",
			Flags: []cli.Flag{
				cli.UintFlag{Name: "session", Required: true, Usage: "session id"},
				cli.StringFlag{Name: "opponent", Required: true, Usage: "player 2 address"},
				cli.Int64Flag{Name: "stake", Usage: "points wagered by player 1"},
				cli.Int64Flag{Name: "opponent-stake", Usage: "points wagered by player 2"},
			},
			Action: cmdStart,
		},
		{
			Name:  "choose-role",
			Usage: "pick batting or bowling after winning the toss",
			Flags: []cli.Flag{
				cli.UintFlag{Name: "session", Required: true, Usage: "session id"},
				cli.BoolFlag{Name: "bat", Usage: "bat first (bowl otherwise)"},
			},
			Action: cmdChooseRole,
		},
		{
			Name:  "commit",
			Usage: "commit to a number for the current phase",
			Flags: []cli.Flag{
				cli.UintFlag{Name: "session", Required: true, Usage: "session id"},
				cli.UintFlag{Name: "number", Required: true, Usage: "secret number"},
			},
			Action: cmdCommit,
		},
		{
			Name:  "reveal",
			Usage: "reveal a previously committed number",
			Flags: []cli.Flag{
				cli.UintFlag{Name: "session", Required: true, Usage: "session id"},
				cli.UintFlag{Name: "number", Required: true, Usage: "committed number"},
				cli.StringFlag{Name: "salt", Required: true, Usage: "hex salt printed by commit"},
			},
			Action: cmdReveal,
		},
		{
			Name:   "admin",
			Usage:  "print the contract admin",
			Action: cmdAdmin,
		},
		{
			Name:      "set-admin",
			Usage:     "hand the contract to a new admin",
			ArgsUsage: "<address>",
			Action:    cmdSetAdmin,
		},
		{
			Name:   "hub",
			Usage:  "print the game hub address",
			Action: cmdHub,
		},
		{
			Name:      "set-hub",
			Usage:     "point the contract at a new game hub",
			ArgsUsage: "<address>",
			Action:    cmdSetHub,
		},
		{
			Name:  "upgrade",
			Usage: "swap the contract code for an installed wasm",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "wasm-hash", Required: true, Usage: "hex hash of the installed contract code"},
			},
			Action: cmdUpgrade,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env bundles everything a command needs: configuration, logger, signing
// identity and the contract client.
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	keys    *keypair.Full
	backend *rpc.Client
	client  *handcricket.Client
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return nil, err
	}

	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if cfg.SecretSeed == "" {
		return nil, fmt.Errorf("no secret seed configured")
	}
	keys, err := keypair.ParseFull(cfg.SecretSeed)
	if err != nil {
		return nil, fmt.Errorf("invalid secret seed: %w", err)
	}

	backend := rpc.NewClient(cfg.RPCURL, nil)
	e := &env{cfg: cfg, log: log, keys: keys, backend: backend}

	if cfg.ContractID != "" {
		client, err := handcricket.NewClient(cfg.ContractID, keys.Address(), backend,
			handcricket.WithNetworkPassphrase(cfg.NetworkPassphrase))
		if err != nil {
			return nil, err
		}
		e.client = client
	}
	return e, nil
}

func (e *env) requireClient() error {
	if e.client == nil {
		return fmt.Errorf("no contract-id configured")
	}
	return nil
}

func cmdDeploy(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.backend.Close()

	wasmHash, err := hex32(c.String("wasm-hash"))
	if err != nil {
		return fmt.Errorf("wasm-hash: %w", err)
	}
	salt, err := proof.NewSalt()
	if err != nil {
		return err
	}
	admin := c.String("admin")
	if admin == "" {
		admin = e.keys.Address()
	}

	ctx := context.Background()
	call, err := handcricket.Deploy(ctx, e.backend, handcricket.DeployParams{
		Deployer: e.keys.Address(),
		Admin:    admin,
		GameHub:  c.String("hub"),
		WasmHash: wasmHash,
		Salt:     salt,
	}, handcricket.WithNetworkPassphrase(e.cfg.NetworkPassphrase))
	if err != nil {
		return err
	}
	e.log.Info("deploying contract", "admin", admin, "hub", c.String("hub"))
	if _, err := call.SignAndSend(ctx, e.keys); err != nil {
		return err
	}
	fmt.Println(call.Result)
	return nil
}

func cmdGame(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.backend.Close()
	if err := e.requireClient(); err != nil {
		return err
	}

	call, err := e.client.GetGame(context.Background(), uint32(c.Uint("session")))
	if err != nil {
		return err
	}
	printGame(call.Result)
	return nil
}

func cmdStart(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.backend.Close()
	if err := e.requireClient(); err != nil {
		return err
	}

	ctx := context.Background()
	sessionID := uint32(c.Uint("session"))
	call, err := e.client.StartGame(ctx, sessionID,
		e.keys.Address(), c.String("opponent"),
		big.NewInt(c.Int64("stake")), big.NewInt(c.Int64("opponent-stake")))
	if err != nil {
		return err
	}
	// The opponent's authorization entry still needs their signature before
	// this clears; submitting here covers the single-signer flow.
	e.log.Info("starting game", "session", sessionID, "opponent", c.String("opponent"))
	_, err = call.SignAndSend(ctx, e.keys)
	return err
}

func cmdChooseRole(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.backend.Close()
	if err := e.requireClient(); err != nil {
		return err
	}

	ctx := context.Background()
	call, err := e.client.ChooseRole(ctx, uint32(c.Uint("session")), e.keys.Address(), c.Bool("bat"))
	if err != nil {
		return err
	}
	_, err = call.SignAndSend(ctx, e.keys)
	return err
}

func cmdCommit(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.backend.Close()
	if err := e.requireClient(); err != nil {
		return err
	}

	salt, err := proof.NewSalt()
	if err != nil {
		return err
	}
	number := uint32(c.Uint("number"))
	commitment := proof.Commitment(number, salt)

	ctx := context.Background()
	call, err := e.client.CommitNumber(ctx, uint32(c.Uint("session")), e.keys.Address(), commitment)
	if err != nil {
		return err
	}
	if _, err := call.SignAndSend(ctx, e.keys); err != nil {
		return err
	}
	// The salt is needed again at reveal time; it is never sent on commit.
	fmt.Printf("salt: %s\n", hex.EncodeToString(salt[:]))
	return nil
}

func cmdReveal(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.backend.Close()
	if err := e.requireClient(); err != nil {
		return err
	}

	salt, err := hex32(c.String("salt"))
	if err != nil {
		return fmt.Errorf("salt: %w", err)
	}
	number := uint32(c.Uint("number"))
	commitment, blob := proof.BuildFor(number, salt)
	if !proof.Verify(commitment, number, blob) {
		return fmt.Errorf("proof blob failed local verification")
	}

	ctx := context.Background()
	call, err := e.client.RevealNumber(ctx, uint32(c.Uint("session")), e.keys.Address(), number, blob)
	if err != nil {
		return err
	}
	_, err = call.SignAndSend(ctx, e.keys)
	return err
}

func cmdAdmin(c *cli.Context) error {
	return printAddress(c, func(ctx context.Context, e *env) (*handcricket.AssembledCall[string], error) {
		return e.client.GetAdmin(ctx)
	})
}

func cmdHub(c *cli.Context) error {
	return printAddress(c, func(ctx context.Context, e *env) (*handcricket.AssembledCall[string], error) {
		return e.client.GetHub(ctx)
	})
}

func printAddress(c *cli.Context, get func(context.Context, *env) (*handcricket.AssembledCall[string], error)) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.backend.Close()
	if err := e.requireClient(); err != nil {
		return err
	}
	call, err := get(context.Background(), e)
	if err != nil {
		return err
	}
	fmt.Println(call.Result)
	return nil
}

func cmdSetAdmin(c *cli.Context) error {
	return submitAddressChange(c, "set-admin", func(ctx context.Context, e *env, addr string) (*handcricket.AssembledCall[handcricket.Void], error) {
		return e.client.SetAdmin(ctx, addr)
	})
}

func cmdSetHub(c *cli.Context) error {
	return submitAddressChange(c, "set-hub", func(ctx context.Context, e *env, addr string) (*handcricket.AssembledCall[handcricket.Void], error) {
		return e.client.SetHub(ctx, addr)
	})
}

func submitAddressChange(c *cli.Context, name string, set func(context.Context, *env, string) (*handcricket.AssembledCall[handcricket.Void], error)) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%s takes exactly one address argument", name)
	}
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.backend.Close()
	if err := e.requireClient(); err != nil {
		return err
	}
	ctx := context.Background()
	call, err := set(ctx, e, c.Args().First())
	if err != nil {
		return err
	}
	_, err = call.SignAndSend(ctx, e.keys)
	return err
}

func cmdUpgrade(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.backend.Close()
	if err := e.requireClient(); err != nil {
		return err
	}

	wasmHash, err := hex32(c.String("wasm-hash"))
	if err != nil {
		return fmt.Errorf("wasm-hash: %w", err)
	}
	ctx := context.Background()
	call, err := e.client.Upgrade(ctx, wasmHash)
	if err != nil {
		return err
	}
	_, err = call.SignAndSend(ctx, e.keys)
	return err
}

func hex32(s string) ([32]byte, error) {
	var out [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(raw) != 32 {
		return out, fmt.Errorf("expected 32 bytes, got %d", len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

func printGame(g handcricket.Game) {
	fmt.Printf("phase:    %s\n", g.Phase)
	fmt.Printf("player1:  %s (stake %s, score %d)\n", g.Player1, g.Player1Points, g.P1Score)
	fmt.Printf("player2:  %s (stake %s, score %d)\n", g.Player2, g.Player2Points, g.P2Score)
	fmt.Printf("innings:  %d  target: %d\n", g.Innings, g.Target)
	if winner, ok := g.TossWinner.Get(); ok {
		fmt.Printf("toss:     %s\n", winner)
	}
	if batter, ok := g.Batter.Get(); ok {
		fmt.Printf("batter:   %s\n", batter)
	}
	if winner, ok := g.Winner.Get(); ok {
		fmt.Printf("winner:   %s\n", winner)
	}
}
