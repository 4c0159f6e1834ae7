package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/suhome/storefront/internal/api"
	"github.com/suhome/storefront/internal/cart"
	"github.com/suhome/storefront/internal/catalog"
	"github.com/suhome/storefront/internal/chat"
	"github.com/suhome/storefront/internal/config"
	"github.com/suhome/storefront/internal/format"
	"github.com/suhome/storefront/internal/models"
	"github.com/suhome/storefront/internal/orders"
	"github.com/suhome/storefront/internal/reviews"
	"github.com/suhome/storefront/internal/session"
	"github.com/suhome/storefront/internal/storage"
	"github.com/suhome/storefront/internal/theme"
	"github.com/suhome/storefront/internal/wishlist"
)

// App is the composition root: every service constructed once, wired
// through explicit dependencies, and subscribed to session changes.
type App struct {
	Config   *config.Config
	Log      *logrus.Entry
	Store    *storage.Store
	Client   *api.Client
	Session  *session.Session
	Ledger   *catalog.Ledger
	Catalog  *catalog.Catalog
	Cart     *cart.Cart
	Wishlist *wishlist.Wishlist
	Chat     *chat.Chat
	Orders   *orders.Service
	Reviews  *reviews.Service
	Theme    *theme.Manager
	Format   *format.Formatter
}

// New builds the full service graph on the OS filesystem.
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	return build(cfg, log, afero.NewOsFs())
}

// NewWithFs builds the service graph on a caller-provided filesystem.
func NewWithFs(cfg *config.Config, log *logrus.Logger, fs afero.Fs) (*App, error) {
	return build(cfg, log, fs)
}

func build(cfg *config.Config, log *logrus.Logger, fs afero.Fs) (*App, error) {
	entry := logrus.NewEntry(log)

	store, err := storage.NewStore(fs, cfg.Storage.Dir, entry.WithField("component", "storage"))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	sess := session.New(store)
	user := sess.Current()

	client := api.NewClient(cfg, entry.WithField("component", "api"))
	ledger := catalog.NewLedger(store)

	a := &App{
		Config:   cfg,
		Log:      entry,
		Store:    store,
		Client:   client,
		Session:  sess,
		Ledger:   ledger,
		Catalog:  catalog.New(client, ledger),
		Cart:     cart.New(store, ledger, user),
		Wishlist: wishlist.New(client, store, entry.WithField("component", "wishlist"), user),
		Chat: chat.New(client, store, entry.WithField("component", "chat"), user, chat.Options{
			PollInterval:   cfg.Support.PollInterval,
			MaxAttachments: cfg.Support.MaxAttachments,
		}),
		Orders:  orders.NewService(client, store, entry.WithField("component", "orders")),
		Reviews: reviews.NewService(store, entry.WithField("component", "reviews")),
		Theme:   theme.NewManager(store),
		Format:  format.NewFormatter(cfg.Locale.Language, cfg.Locale.Currency),
	}

	// Identity changes fan out to every identity-scoped service.
	sess.OnChange(func(u *models.User) {
		a.Cart.SetUser(u)
		a.Chat.SetUser(u)
		a.Wishlist.SetUser(context.Background(), u)
	})

	return a, nil
}

// Login authenticates against the backend and installs the session.
func (a *App) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := a.Client.Login(ctx, api.LoginInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("backend returned no user")
	}
	a.Session.Login(*resp.User)
	return a.Session.Current(), nil
}

// Register creates an account and logs it in.
func (a *App) Register(ctx context.Context, fullName, email, password, taxID string) (*models.User, error) {
	resp, err := a.Client.Register(ctx, api.RegisterInput{
		FullName: fullName,
		Email:    email,
		Password: password,
		TaxID:    taxID,
	})
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("backend returned no user")
	}
	a.Session.Login(*resp.User)
	return a.Session.Current(), nil
}

// Logout clears the session; services fall back to their guest scope.
func (a *App) Logout() {
	a.Session.Logout()
}

// Checkout decrements stock for every cart line, records the order
// locally, and clears the cart. Lines whose stock update could not
// reach the backend are absorbed by the inventory ledger.
func (a *App) Checkout(ctx context.Context, contact *orders.Contact, shippingFee float64, shippingLabel string) (models.Order, error) {
	items := a.Cart.Items()
	if len(items) == 0 {
		return models.Order{}, fmt.Errorf("cart is empty")
	}
	subtotal := a.Cart.Subtotal()

	// Clearing first releases the cart reservations; failed backend
	// updates below re-enter the ledger as unsynced sales.
	a.Cart.Clear()
	for _, item := range items {
		if a.Catalog.UpdateStock(ctx, item.ID, item.Quantity) {
			a.Ledger.Decrease([]models.CartItem{item})
			a.Log.WithField("product_id", item.ID).Warn("stock update mocked locally")
		}
	}

	order := a.Orders.AddOrder(orders.NewOrderInput{
		Items:         items,
		Total:         subtotal + shippingFee,
		ShippingFee:   shippingFee,
		ShippingLabel: shippingLabel,
		Contact:       contact,
	})
	return order, nil
}
