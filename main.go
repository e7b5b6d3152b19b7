package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"unicornfactory/config"
	"unicornfactory/contract"
	"unicornfactory/sdk"
)

func main() {
	app := &cli.App{
		Name:  "unicornfactory",
		Usage: "crowdfunding ledger with bonding-curve pricing and milestone governance",
		Commands: []*cli.Command{
			cmdDemo,
			cmdState,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the runner logger from config: console by default, a
// rotating file when UF_LOG_FILE is set.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	var sink zapcore.WriteSyncer
	if cfg.LogFile != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogBackups,
		})
	} else {
		sink = zapcore.AddSync(os.Stderr)
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), sink, level)
	return zap.New(core), nil
}

var cmdState = &cli.Command{
	Name:  "state",
	Usage: "dump a persisted host state file",
	Action: func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path := cfg.StateFile
		if c.Args().Len() > 0 {
			path = c.Args().First()
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var cmdDemo = &cli.Command{
	Name:  "demo",
	Usage: "run a full project lifecycle against the in-memory host",
	Action: func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
		return runDemo(cfg, logger)
	},
}

// runDemo drives initialize -> contribute/buy -> milestones -> proposal ->
// votes -> release, then persists the host for the state command. Failed
// instructions are expected along the way and logged, not fatal: the host
// rolls each one back.
func runDemo(cfg *config.Config, logger *zap.Logger) error {
	runID := uuid.NewString()
	logger.Info("demo run starting", zap.String("run_id", runID))

	mem := sdk.NewMemoryHost()
	clock := &sdk.FixedClock{Unix: 1_700_000_000}
	host := &sdk.Host{
		State:  mem,
		Bank:   mem,
		Tokens: mem,
		Clock:  clock,
		Log:    sdk.NewZapLogger(logger),
	}
	proc := contract.NewProcessor(host)

	authority := sdk.AddressFromSeed("founder")
	alice := sdk.AddressFromSeed("alice")
	bob := sdk.AddressFromSeed("bob")
	mint := sdk.Derive([]byte("mint"), []byte(runID))
	project := contract.ProjectAddress(authority)

	mem.Deposit(alice, 10_000)
	mem.Deposit(bob, 10_000)

	aliceCredits := sdk.Derive([]byte("token-account"), mint[:], alice[:])
	bobCredits := sdk.Derive([]byte("token-account"), mint[:], bob[:])
	if err := mem.Create(aliceCredits, mint, alice); err != nil {
		return err
	}
	if err := mem.Create(bobCredits, mint, bob); err != nil {
		return err
	}

	step := func(name string, ins sdk.Instruction) {
		if err := mem.Apply(proc, ins); err != nil {
			logger.Warn("instruction rejected", zap.String("step", name), zap.Error(err))
			return
		}
		logger.Info("instruction applied", zap.String("step", name))
	}

	step("initialize", contract.NewInitializeProject(authority, mint, "Unicorn Factory", "UNI", 10_000))
	step("contribute", contract.NewContribute(project, alice, aliceCredits, mint, 1_000))
	step("buy", contract.NewBuyTokens(project, bob, bobCredits, mint, 2_200))
	step("sell", contract.NewSellTokens(project, bob, bobCredits, mint, 10))

	step("milestone-0", contract.NewAddMilestone(project, authority, 0, "Prototype", "working prototype", 500))
	step("milestone-1", contract.NewAddMilestone(project, authority, 1, "Launch", "public launch", 1_500))

	step("proposal-0", contract.NewCreateProposal(project, authority, 0, 0, "Release prototype funds", "prototype is done"))
	// A second proposal on the same milestone is rejected for good.
	step("proposal-dup", contract.NewCreateProposal(project, authority, 1, 0, "Try again", "should fail"))

	step("vote-alice", contract.NewVote(project, alice, 0, true))
	step("vote-bob", contract.NewVote(project, bob, 0, true))

	// Release before the window closes is refused; advance past it.
	step("release-early", contract.NewReleaseFunds(project, authority, 0, 0))
	clock.Advance(contract.VotingWindow + 1)
	step("release", contract.NewReleaseFunds(project, authority, 0, 0))

	step("complete-milestone-1", contract.NewCompleteMilestone(project, authority, 1))

	logger.Info("treasury after release",
		zap.Uint64("balance", mem.Balance(project)),
		zap.Uint64("authority", mem.Balance(authority)),
	)

	if err := mem.SaveFile(cfg.StateFile); err != nil {
		return err
	}
	logger.Info("host state saved", zap.String("path", cfg.StateFile))
	return nil
}
