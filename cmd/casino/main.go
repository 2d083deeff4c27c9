package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/kazino55/client/internal/api"
	"github.com/kazino55/client/internal/auth"
	"github.com/kazino55/client/internal/config"
	"github.com/kazino55/client/internal/event"
	"github.com/kazino55/client/internal/fetch"
	"github.com/kazino55/client/internal/logger"
	"github.com/kazino55/client/internal/model"
	"github.com/kazino55/client/internal/session"
)

const usage = `Usage: casino <command> [args]

Commands:
  login <email> <password>     sign in and store the session
  register <email> <nickname> <password>
                               create an account
  quick-register               create a one-click account with generated credentials
  logout                       end the session
  whoami                       show the cached user
  profile                      fetch the profile from the server
  balance                      show wallet balance
  stats                        show play statistics
  games [category]             list games, optionally by category
  featured                     list featured games
  winners [limit]              recent winners
  launch <gameID> [demo]       get a game launch URL
  deposit <amount> <method>    create a deposit
  withdraw <amount> <method>   request a withdrawal
  history [page]               payment history
  bonuses                      list available bonuses
  claim <bonusID>              claim a bonus
  lang <az|en|ru>              set the interface language
  config                       show platform configuration
`

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Env); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	app := newApp(cfg)
	defer app.unsubscribe()

	if err := app.run(context.Background(), args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg         *config.Config
	session     *session.Manager
	client      *api.Client
	auth        *auth.Service
	unsubscribe func()
}

func newApp(cfg *config.Config) *app {
	store := session.OpenFileStore(cfg.Client.SessionFile)
	sess := session.NewManager(store)
	if sess.Language() == "" && cfg.Client.Language != "" {
		sess.SetLanguage(cfg.Client.Language)
	}

	bus := event.NewBus()
	unsubscribe := bus.Subscribe(func(s event.Session) {
		if s.User == nil {
			fmt.Fprintln(os.Stderr, "session ended")
		}
	})

	client := api.New(sess, bus, api.Options{
		BaseURL: cfg.Client.BaseURL,
		Timeout: cfg.Client.Timeout(),
	})

	return &app{
		cfg:         cfg,
		session:     sess,
		client:      client,
		auth:        auth.NewService(client, sess, bus),
		unsubscribe: unsubscribe,
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "quick-register":
		return a.quickRegister(ctx)
	case "logout":
		a.auth.Logout(ctx)
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.whoami()
	case "profile":
		return a.profile(ctx)
	case "balance":
		return a.balance(ctx)
	case "stats":
		return a.stats(ctx)
	case "games":
		return a.games(ctx, args)
	case "featured":
		return a.featured(ctx)
	case "winners":
		return a.winners(ctx, args)
	case "launch":
		return a.launch(ctx, args)
	case "deposit":
		return a.deposit(ctx, args)
	case "withdraw":
		return a.withdraw(ctx, args)
	case "history":
		return a.history(ctx, args)
	case "bonuses":
		return a.bonuses(ctx)
	case "claim":
		return a.claim(ctx, args)
	case "lang":
		return a.setLanguage(args)
	case "config":
		return a.platformConfig(ctx)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}
	user, err := a.auth.Login(ctx, auth.LoginForm{Email: args[0], Password: args[1]})
	if err != nil {
		return describe(err)
	}
	fmt.Printf("welcome back, %s\n", user.Nickname)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: register <email> <nickname> <password>")
	}
	user, err := a.auth.Register(ctx, auth.RegisterForm{
		Email:           args[0],
		Nickname:        args[1],
		Password:        args[2],
		ConfirmPassword: args[2],
		AgreeTerms:      true,
	})
	if err != nil {
		return describe(err)
	}
	fmt.Printf("account created for %s\n", user.Nickname)
	return nil
}

func (a *app) quickRegister(ctx context.Context) error {
	result, err := a.auth.QuickRegister(ctx, true)
	if err != nil {
		return describe(err)
	}
	fmt.Printf("account created: %s\n", result.User.Nickname)
	if result.Credentials != nil {
		fmt.Printf("email:    %s\npassword: %s\n", result.Credentials.Email, result.Credentials.Password)
		fmt.Println("save these credentials, they will not be shown again")
	}
	return nil
}

func (a *app) whoami() error {
	user, ok := a.auth.CurrentUser()
	if !ok {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s> level %d balance %.2f\n", user.Nickname, user.Email, user.Level, user.Balance)
	return nil
}

func (a *app) profile(ctx context.Context) error {
	loader := fetch.Profile(a.client, a.session)
	state := loader.Load(ctx)
	defer loader.Close()
	if state.Err != "" {
		return fmt.Errorf("%s", state.Err)
	}
	if state.Data == nil {
		fmt.Println("not logged in")
		return nil
	}
	u := state.Data
	fmt.Printf("%s <%s>\nlevel: %d\nverified: %v\ngames played: %d\n", u.Nickname, u.Email, u.Level, u.IsVerified, u.GamesPlayed)
	return nil
}

func (a *app) balance(ctx context.Context) error {
	loader := fetch.Balance(a.client, a.session)
	state := loader.Load(ctx)
	defer loader.Close()
	if state.Err != "" {
		return fmt.Errorf("%s", state.Err)
	}
	if state.Data == nil {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("balance: %.2f %s\n", state.Data.Total(), state.Data.Currency)
	for _, w := range state.Data.Wallets {
		fmt.Printf("  %s: %.2f %s\n", w.Wallet, w.Balance, w.Currency)
	}
	return nil
}

func (a *app) stats(ctx context.Context) error {
	stats, err := a.client.Statistics(ctx)
	if err != nil {
		return describe(err)
	}
	fmt.Printf("deposits:    %.2f\nwithdrawals: %.2f\nwinnings:    %.2f\ngames played: %d\n",
		stats.TotalDeposits, stats.TotalWithdrawals, stats.TotalWinnings, stats.GamesPlayed)
	return nil
}

func (a *app) games(ctx context.Context, args []string) error {
	filters := api.GameFilters{Limit: 50}
	if len(args) > 0 {
		filters.Category = args[0]
	}
	loader := fetch.Games(a.client, a.session, filters)
	state := loader.Load(ctx)
	defer loader.Close()
	if state.Err != "" {
		return fmt.Errorf("%s", state.Err)
	}
	printGames(state.Data.Data)
	fmt.Printf("page %d of %d (%d games)\n", state.Data.Pagination.Page, state.Data.Pagination.TotalPages, state.Data.Pagination.Total)
	return nil
}

func (a *app) featured(ctx context.Context) error {
	loader := fetch.FeaturedGames(a.client, a.session)
	state := loader.Load(ctx)
	defer loader.Close()
	if state.Err != "" {
		return fmt.Errorf("%s", state.Err)
	}
	printGames(*state.Data)
	return nil
}

func printGames(games []model.Game) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPROVIDER\tRTP")
	for _, g := range games {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\n", g.ID, g.Name, g.Category, g.Provider, g.RTP)
	}
	tw.Flush()
}

func (a *app) winners(ctx context.Context, args []string) error {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad limit %q", args[0])
		}
		limit = n
	}
	loader := fetch.RecentWinners(a.client, a.session, limit)
	state := loader.Load(ctx)
	defer loader.Close()
	if state.Err != "" {
		return fmt.Errorf("%s", state.Err)
	}
	for _, w := range *state.Data {
		fmt.Printf("%-16s won %8.2f on %s\n", w.Username, w.Amount, w.Game)
	}
	return nil
}

func (a *app) launch(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: launch <gameID> [demo]")
	}
	mode := "real"
	if len(args) > 1 {
		mode = args[1]
	}
	ls, err := a.client.LaunchGame(ctx, args[0], mode)
	if err != nil {
		return describe(err)
	}
	fmt.Println(ls.GameURL)
	return nil
}

func (a *app) deposit(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: deposit <amount> <method>")
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad amount %q", args[0])
	}
	tx, err := a.client.CreateDeposit(ctx, api.DepositRequest{
		Amount:        amount,
		PaymentMethod: args[1],
	})
	if err != nil {
		return describe(err)
	}
	fmt.Printf("deposit %s: %s\n", tx.TransactionID, tx.Status)
	if tx.PaymentURL != "" {
		fmt.Println("pay at:", tx.PaymentURL)
	}
	return nil
}

func (a *app) withdraw(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: withdraw <amount> <method>")
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad amount %q", args[0])
	}
	tx, err := a.client.CreateWithdrawal(ctx, api.WithdrawalRequest{
		Amount:        amount,
		PaymentMethod: args[1],
	})
	if err != nil {
		return describe(err)
	}
	fmt.Printf("withdrawal %s: %s\n", tx.TransactionID, tx.Status)
	return nil
}

func (a *app) history(ctx context.Context, args []string) error {
	params := api.HistoryParams{Page: 1, Limit: 20}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad page %q", args[0])
		}
		params.Page = n
	}
	loader := fetch.PaymentHistory(a.client, a.session, params)
	state := loader.Load(ctx)
	defer loader.Close()
	if state.Err != "" {
		return fmt.Errorf("%s", state.Err)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tAMOUNT\tSTATUS\tDATE")
	for _, tx := range state.Data.Data {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\n", tx.TransactionID, tx.Type, tx.Amount, tx.Status, tx.CreatedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()
	return nil
}

func (a *app) bonuses(ctx context.Context) error {
	bonuses, err := a.client.Bonuses(ctx)
	if err != nil {
		return describe(err)
	}
	for _, b := range bonuses {
		fmt.Printf("%s  %-24s %8.2f  %s\n", b.ID, b.Title, b.Amount, b.Status)
	}
	return nil
}

func (a *app) claim(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: claim <bonusID>")
	}
	b, err := a.client.ClaimBonus(ctx, args[0])
	if err != nil {
		return describe(err)
	}
	fmt.Printf("claimed %s (%.2f)\n", b.Title, b.Amount)
	return nil
}

func (a *app) setLanguage(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: lang <az|en|ru>")
	}
	a.session.SetLanguage(args[0])
	fmt.Println("language set to", args[0])
	return nil
}

func (a *app) platformConfig(ctx context.Context) error {
	loader := fetch.Config(a.client, a.session)
	state := loader.Load(ctx)
	defer loader.Close()
	if state.Err != "" {
		return fmt.Errorf("%s", state.Err)
	}
	cfg := state.Data
	fmt.Println("currencies: ", cfg.Currencies)
	fmt.Println("languages:  ", cfg.Languages)
	fmt.Println("methods:    ", cfg.PaymentMethods)
	fmt.Println("categories: ", cfg.GameCategories)
	if cfg.Maintenance.IsActive {
		fmt.Println("maintenance:", cfg.Maintenance.Message)
	}
	return nil
}

// describe keeps validation errors readable on the terminal.
func describe(err error) error {
	apiErr, ok := api.AsError(err)
	if !ok || len(apiErr.Fields) == 0 {
		return err
	}
	msg := apiErr.Message
	for field, fieldMsg := range apiErr.Fields {
		msg += fmt.Sprintf("\n  %s: %s", field, fieldMsg)
	}
	return fmt.Errorf("%s", msg)
}
