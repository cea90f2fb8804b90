// Command presale runs the sale engine against a local sqlite store, with
// in-store token and payment ledgers standing in for the chain collaborators.
// Handy for poking at the full purchase/claim flow from a shell.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"meridian_presale/contract"
	"meridian_presale/store"
)

type runnerConfig struct {
	Owner    string           `toml:"owner"`
	Treasury string           `toml:"treasury"`
	Vault    string           `toml:"vault"`
	DB       string           `toml:"db"`
	Assets   map[string]uint8 `toml:"assets"` // ticker -> decimals
}

func defaultConfig() runnerConfig {
	return runnerConfig{
		Owner:    "hive:owner",
		Treasury: "hive:treasury",
		Vault:    "contract:presale-vault",
		DB:       "presale.db",
		Assets:   map[string]uint8{"usdc": 6, "usdt": 6, "dai": 18},
	}
}

func loadConfig(path string) (runnerConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// eventLogger forwards engine event lines into zerolog.
type eventLogger struct {
	log zerolog.Logger
}

func (l eventLogger) Log(msg string) {
	l.log.Info().Str("event", msg).Msg("engine")
}

////////////////////////////////////////////////////////////////////////////////
// Dev collaborators
////////////////////////////////////////////////////////////////////////////////

// The sandbox keeps token and payment balances in the same kv store as the
// engine, under prefixes the engine never touches ("bal:", "pay:").

type devBacking struct {
	state contract.State
}

func balKey(addr contract.Address) string { return "bal:" + addr.String() }

func (b devBacking) BalanceOf(addr contract.Address) string {
	raw := b.state.Get(balKey(addr))
	if raw == nil {
		return "0"
	}
	return *raw
}

func (b devBacking) Transfer(from, to contract.Address, amount string) error {
	return moveBalance(b.state, balKey(from), balKey(to), amount)
}

type devRegistry struct {
	assets map[string]uint8
}

func (r devRegistry) IsAllowed(asset contract.Asset) bool {
	_, ok := r.assets[asset.String()]
	return ok
}

func (r devRegistry) DecimalsOf(asset contract.Asset) uint8 {
	return r.assets[asset.String()]
}

type devPayments struct {
	state contract.State
}

func payKey(asset contract.Asset, addr contract.Address) string {
	return "pay:" + asset.String() + ":" + addr.String()
}

func (p devPayments) TransferFrom(asset contract.Asset, from, to contract.Address, amount string) error {
	return moveBalance(p.state, payKey(asset, from), payKey(asset, to), amount)
}

func moveBalance(state contract.State, fromKey, toKey, amount string) error {
	want, err := contract.ParseBalance(amount)
	if err != nil {
		return err
	}
	have, err := contract.ParseBalance(readOrZero(state, fromKey))
	if err != nil {
		return err
	}
	if have.Lt(want) {
		return fmt.Errorf("insufficient balance: have %s, want %s", have.Dec(), want.Dec())
	}
	held, err := contract.ParseBalance(readOrZero(state, toKey))
	if err != nil {
		return err
	}
	state.Set(fromKey, have.Sub(have, want).Dec())
	state.Set(toKey, held.Add(held, want).Dec())
	return nil
}

func readOrZero(state contract.State, key string) string {
	raw := state.Get(key)
	if raw == nil {
		return "0"
	}
	return *raw
}

////////////////////////////////////////////////////////////////////////////////
// CLI
////////////////////////////////////////////////////////////////////////////////

type runner struct {
	cfg    runnerConfig
	state  *store.SqliteState
	engine *contract.Contract
	log    zerolog.Logger
}

func (r *runner) env(ctx *cli.Context) contract.Env {
	sender := ctx.String("as")
	if sender == "" {
		sender = r.cfg.Owner
	}
	now := ctx.Int64("now")
	if now == 0 {
		now = time.Now().Unix()
	}
	return contract.Env{
		Sender: contract.Address(sender),
		Now:    now,
		TxID:   uuid.NewString(),
	}
}

func setup(ctx *cli.Context) (*runner, error) {
	cfg, err := loadConfig(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	state, err := store.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	engine := contract.New(
		state,
		eventLogger{log: log},
		devBacking{state: state},
		devRegistry{assets: cfg.Assets},
		devPayments{state: state},
		contract.Config{
			Owner:    contract.Address(cfg.Owner),
			Treasury: contract.Address(cfg.Treasury),
			Vault:    contract.Address(cfg.Vault),
		},
	)
	return &runner{cfg: cfg, state: state, engine: engine, log: log}, nil
}

func withRunner(fn func(*runner, *cli.Context) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		r, err := setup(ctx)
		if err != nil {
			return err
		}
		defer r.state.Close()
		return fn(r, ctx)
	}
}

func main() {
	app := &cli.App{
		Name:  "presale",
		Usage: "tiered token sale with cliff/linear vesting, local sandbox",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "toml config path"},
			&cli.StringFlag{Name: "as", Usage: "sender address, defaults to owner"},
			&cli.Int64Flag{Name: "now", Usage: "override unix time"},
		},
		Commands: []*cli.Command{
			{
				Name:  "start",
				Usage: "open the sale window",
				Action: withRunner(func(r *runner, ctx *cli.Context) error {
					return r.engine.Start(r.env(ctx))
				}),
			},
			{
				Name:  "end",
				Usage: "close the sale once the window elapsed or all tiers sold out",
				Action: withRunner(func(r *runner, ctx *cli.Context) error {
					return r.engine.End(r.env(ctx))
				}),
			},
			{
				Name:  "set-pools",
				Usage: "set bonus pool budgets before start",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "lock", Required: true},
					&cli.StringFlag{Name: "ref", Required: true},
				},
				Action: withRunner(func(r *runner, ctx *cli.Context) error {
					return r.engine.SetBonusPools(r.env(ctx), ctx.String("lock"), ctx.String("ref"))
				}),
			},
			{
				Name:  "buy",
				Usage: "purchase into a tier",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "tier", Required: true},
					&cli.StringFlag{Name: "asset", Required: true},
					&cli.StringFlag{Name: "amount", Required: true, Usage: "raw units of the payment asset"},
					&cli.StringFlag{Name: "referrer"},
				},
				Action: withRunner(func(r *runner, ctx *cli.Context) error {
					return r.engine.Buy(r.env(ctx), contract.BuyArgs{
						Tier:     uint8(ctx.Uint("tier")),
						Asset:    contract.Asset(ctx.String("asset")),
						Amount:   ctx.String("amount"),
						Referrer: contract.Address(ctx.String("referrer")),
					})
				}),
			},
			{
				Name:      "claim",
				Usage:     "claim the vested slice of a position",
				ArgsUsage: "<position-id>",
				Action: withRunner(func(r *runner, ctx *cli.Context) error {
					id, err := parseID(ctx)
					if err != nil {
						return err
					}
					return r.engine.Claim(r.env(ctx), id)
				}),
			},
			{
				Name:      "claimable",
				Usage:     "show the claimable amount of a position",
				ArgsUsage: "<position-id>",
				Action: withRunner(func(r *runner, ctx *cli.Context) error {
					id, err := parseID(ctx)
					if err != nil {
						return err
					}
					amount, err := r.engine.Claimable(r.env(ctx), id)
					if err != nil {
						return err
					}
					fmt.Println(amount)
					return nil
				}),
			},
			{
				Name:  "sweep",
				Usage: "send post-sale vault surplus to an address",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Required: true},
				},
				Action: withRunner(func(r *runner, ctx *cli.Context) error {
					return r.engine.Sweep(r.env(ctx), contract.Address(ctx.String("to")))
				}),
			},
			{
				Name:  "status",
				Usage: "dump sale, pools, tiers and the sender's records",
				Action: withRunner(func(r *runner, ctx *cli.Context) error {
					return r.status(ctx)
				}),
			},
			{
				Name:  "fund",
				Usage: "credit a sandbox balance (backing token or payment asset)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "account", Required: true},
					&cli.StringFlag{Name: "amount", Required: true},
					&cli.StringFlag{Name: "asset", Usage: "payment ticker; empty funds the backing token"},
				},
				Action: withRunner(func(r *runner, ctx *cli.Context) error {
					return r.fund(ctx)
				}),
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func parseID(ctx *cli.Context) (uint64, error) {
	if ctx.NArg() != 1 {
		return 0, fmt.Errorf("expected exactly one position id")
	}
	var id uint64
	if _, err := fmt.Sscanf(ctx.Args().First(), "%d", &id); err != nil {
		return 0, fmt.Errorf("bad position id %q", ctx.Args().First())
	}
	return id, nil
}

func (r *runner) status(ctx *cli.Context) error {
	env := r.env(ctx)
	sale := r.engine.Sale()
	pools := r.engine.Pools()
	fmt.Printf("sale: started=%v ended=%v window=[%d, %d]\n",
		sale.Started, sale.Ended, sale.SaleStart, sale.SaleEnd)
	fmt.Printf("pools: lock=%s/%s ref=%s/%s\n",
		pools.AllocatedLock, pools.LockPool, pools.AllocatedRef, pools.RefPool)
	for tier := uint8(1); tier <= contract.TierCount; tier++ {
		sold, err := r.engine.TierSold(tier)
		if err != nil {
			return err
		}
		fmt.Printf("tier %d: sold=%s\n", tier, sold)
	}
	fmt.Printf("liability: %s\n", r.engine.Liability())
	positions, err := r.engine.PositionsOf(env.Sender)
	if err != nil {
		return err
	}
	for _, pos := range positions {
		claimable, err := r.engine.Claimable(env, pos.ID)
		if err != nil {
			return err
		}
		fmt.Printf("position %d: total=%s claimed=%s claimable=%s cliff=%d end=%d\n",
			pos.ID, pos.Total, pos.Claimed, claimable, pos.Cliff, pos.End)
	}
	return nil
}

func (r *runner) fund(ctx *cli.Context) error {
	account := contract.Address(ctx.String("account"))
	amount, err := contract.ParseBalance(ctx.String("amount"))
	if err != nil {
		return err
	}
	key := balKey(account)
	if ticker := ctx.String("asset"); ticker != "" {
		key = payKey(contract.Asset(ticker), account)
	}
	held, err := contract.ParseBalance(readOrZero(r.state, key))
	if err != nil {
		return err
	}
	r.state.Set(key, held.Add(held, amount).Dec())
	r.log.Info().Str("account", account.String()).Str("key", key).Msg("funded")
	return nil
}
