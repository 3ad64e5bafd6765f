package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"inventory-spa/internal/model"
	"inventory-spa/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	err error
}

func (f fakeAuth) Login(ctx context.Context, username, password string) (*service.LoginResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &service.LoginResponse{Token: "tok-" + username, Username: username}, nil
}

type fakeStock struct {
	items   []model.StockItem
	listErr error
	addErr  error
	added   []service.CreateStockInput
	tokens  []string
}

func (f *fakeStock) ListStock(ctx context.Context, token string) ([]model.StockItem, error) {
	f.tokens = append(f.tokens, token)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.StockItem(nil), f.items...), nil
}

func (f *fakeStock) AddStock(ctx context.Context, token string, in service.CreateStockInput, image *multipart.FileHeader) error {
	f.tokens = append(f.tokens, token)
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, in)
	f.items = append(f.items, model.StockItem{Name: in.Name, Quantity: in.Quantity, Date: in.Date})
	return nil
}

type fileForm struct {
	MapForm
	file *multipart.FileHeader
}

func (f fileForm) File(key string) (*multipart.FileHeader, error) {
	if key == "image" && f.file != nil {
		return f.file, nil
	}
	return f.MapForm.File(key)
}

type app struct {
	registry *Registry
	loader   *TemplateLoader
	catalogs *service.Catalogs
	stock    *fakeStock
}

func newApp(auth Authenticator) *app {
	a := &app{
		registry: NewRegistry(),
		loader:   NewTemplateLoader(),
		catalogs: service.NewCatalogs(),
		stock:    &fakeStock{},
	}
	RegisterControllers(a.registry, Deps{Auth: auth, Stock: a.stock, Catalogs: a.catalogs})
	return a
}

func (a *app) open(sess Session, view string, params map[string]string) *Router {
	r := NewRouter(a.registry, a.loader, NewContainer(sess, params))
	r.Navigate(context.Background(), view)
	return r
}

func page(t *testing.T, a *app, r *Router) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, a.loader.RenderPage(&buf, r.Container()))
	return buf.String()
}

func TestLanding_Login(t *testing.T) {
	a := newApp(fakeAuth{})
	sess := &fakeSession{id: "s1"}
	r := a.open(sess, "landing", nil)

	require.NoError(t, r.Dispatch(context.Background(), Event{Name: "login", Form: MapForm{"username": "alice", "password": "pw"}}))

	assert.Equal(t, "alice", sess.Username())
	assert.Equal(t, "tok-alice", sess.Token())
	assert.NotEqual(t, "s1", sess.ID())
	to, ok := r.Container().Redirected()
	assert.True(t, ok)
	assert.Equal(t, Dashboard, to)
}

func TestLanding_LoginRegenerateFailure(t *testing.T) {
	a := newApp(fakeAuth{})
	sess := &fakeSession{id: "s1", regenErr: errors.New("storage down")}
	r := a.open(sess, "landing", nil)

	require.NoError(t, r.Dispatch(context.Background(), Event{Name: "login", Form: MapForm{"username": "alice", "password": "pw"}}))

	assert.Empty(t, sess.Username())
	assert.Equal(t, "Server error. Try again later.", r.Container().InlineMessage())
	_, ok := r.Container().Redirected()
	assert.False(t, ok)
}

func TestLanding_LoginFailures(t *testing.T) {
	cases := map[string]error{
		"User not found":                    service.ErrUserNotFound,
		"Invalid password":                  service.ErrInvalidCredentials,
		"Username and password are required": service.ErrValidation,
	}
	for want, err := range cases {
		a := newApp(fakeAuth{err: err})
		sess := &fakeSession{id: "s1"}
		r := a.open(sess, "landing", nil)

		require.NoError(t, r.Dispatch(context.Background(), Event{Name: "login", Form: MapForm{}}))

		assert.Equal(t, want, r.Container().InlineMessage())
		assert.Empty(t, sess.Username())
		assert.Contains(t, page(t, a, r), want)
	}
}

func TestLanding_RedirectsSignedInUser(t *testing.T) {
	a := newApp(fakeAuth{})
	r := a.open(signedInSession(), "landing", nil)

	to, ok := r.Container().Redirected()
	assert.True(t, ok)
	assert.Equal(t, Dashboard, to)
}

func TestViews_RequireSession(t *testing.T) {
	a := newApp(fakeAuth{})
	for _, v := range []string{"dashboard", "products", "sales", "reports", ""} {
		r := a.open(&fakeSession{id: "s1"}, v, nil)
		to, ok := r.Container().Redirected()
		assert.True(t, ok, v)
		assert.Equal(t, Landing, to, v)
	}
}

func TestDashboard_ListsSortedStock(t *testing.T) {
	a := newApp(fakeAuth{})
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	a.stock.items = []model.StockItem{
		{Name: "Older", Quantity: 3, PurchasePrice: 2, Date: day(1)},
		{Name: "Newer", Quantity: 20, PurchasePrice: 1, Date: day(5)},
	}

	r := a.open(signedInSession(), "dashboard", map[string]string{"sort-order": "earliest"})
	items := r.Container().Get("Stock").([]model.StockItem)
	assert.Equal(t, "Older", items[0].Name)
	assert.Equal(t, []string{"tok"}, a.stock.tokens)

	r = a.open(signedInSession(), "dashboard", nil)
	items = r.Container().Get("Stock").([]model.StockItem)
	assert.Equal(t, "Newer", items[0].Name)

	html := page(t, a, r)
	assert.Contains(t, html, "alice")
	assert.Contains(t, html, "Low stock: 1")
}

func TestDashboard_ExpiredTokenSignsOut(t *testing.T) {
	a := newApp(fakeAuth{})
	a.stock.listErr = service.ErrForbidden
	sess := signedInSession()
	a.catalogs.For(sess.ID())

	r := a.open(sess, "dashboard", nil)

	to, _ := r.Container().Redirected()
	assert.Equal(t, Landing, to)
	assert.Empty(t, sess.Username())
	assert.Zero(t, a.catalogs.Len())
}

func TestDashboard_AddStock(t *testing.T) {
	a := newApp(fakeAuth{})
	r := a.open(signedInSession(), "dashboard", nil)
	ctx := context.Background()

	require.NoError(t, r.Dispatch(ctx, Event{Name: "add-stock", Form: MapForm{"name": "Rice", "price": "2", "quantity": "4", "date": "2024-03-01"}}))
	assert.Equal(t, "Fill all fields properly.", r.Container().AlertMessage())
	assert.Empty(t, a.stock.added)

	form := fileForm{
		MapForm: MapForm{"name": "Rice", "price": "2", "quantity": "4", "date": "2024-03-01"},
		file:    &multipart.FileHeader{Filename: "rice.png"},
	}
	require.NoError(t, r.Dispatch(ctx, Event{Name: "add-stock", Form: form}))
	assert.Equal(t, "Stock added and saved!", r.Container().AlertMessage())
	require.Len(t, a.stock.added, 1)
	assert.Equal(t, 2.0, a.stock.added[0].PurchasePrice)

	items := r.Container().Get("Stock").([]model.StockItem)
	assert.Len(t, items, 1)
}

func TestDashboard_AddStockErrorMessage(t *testing.T) {
	a := newApp(fakeAuth{})
	a.stock.addErr = fmt.Errorf("%w: PurchasePrice must be at least 0", service.ErrValidation)
	r := a.open(signedInSession(), "dashboard", nil)

	form := fileForm{
		MapForm: MapForm{"name": "Rice", "price": "2", "quantity": "4", "date": "2024-03-01"},
		file:    &multipart.FileHeader{Filename: "rice.png"},
	}
	require.NoError(t, r.Dispatch(context.Background(), Event{Name: "add-stock", Form: form}))
	assert.Equal(t, "Error: PurchasePrice must be at least 0", r.Container().AlertMessage())
}

func TestLogout_DropsCatalog(t *testing.T) {
	a := newApp(fakeAuth{})
	sess := signedInSession()
	r := a.open(sess, "products", nil)
	require.NoError(t, r.Dispatch(context.Background(), Event{Name: "add-product", Form: MapForm{"id": "p1", "name": "Rice", "quantity": "3"}}))
	require.Equal(t, 1, a.catalogs.Len())

	require.NoError(t, r.Dispatch(context.Background(), Event{Name: "logout"}))

	assert.Empty(t, sess.Username())
	assert.Zero(t, a.catalogs.Len())
	to, _ := r.Container().Redirected()
	assert.Equal(t, Landing, to)
}

func TestProducts_AddAndEdit(t *testing.T) {
	a := newApp(fakeAuth{})
	sess := signedInSession()
	r := a.open(sess, "products", nil)
	ctx := context.Background()

	require.NoError(t, r.Dispatch(ctx, Event{Name: "add-product", Form: MapForm{"id": "p1", "name": "Rice"}}))
	assert.Equal(t, "Please fill all fields.", r.Container().AlertMessage())

	require.NoError(t, r.Dispatch(ctx, Event{Name: "add-product", Form: MapForm{"id": "p1", "name": "Rice", "quantity": "3"}}))
	require.NoError(t, r.Dispatch(ctx, Event{Name: "add-product", Form: MapForm{"id": "p1", "name": "Beans", "quantity": "1"}}))
	assert.Equal(t, "Product ID already exists.", r.Container().AlertMessage())

	require.NoError(t, r.Dispatch(ctx, Event{Name: "edit-product", Form: MapForm{"id": "p1", "name": "Rice", "quantity": "-1"}}))
	assert.Equal(t, "Please enter valid product details.", r.Container().AlertMessage())

	require.NoError(t, r.Dispatch(ctx, Event{Name: "edit-product", Form: MapForm{"id": "p1", "name": "Brown rice", "quantity": "7"}}))
	p, ok := a.catalogs.For(sess.ID()).Product("p1")
	require.True(t, ok)
	assert.Equal(t, "Brown rice", p.Name)
	assert.Equal(t, 7, p.Quantity)
	assert.Contains(t, page(t, a, r), "ID: p1 | Brown rice | Qty: 7")
}

func TestSales_Flow(t *testing.T) {
	a := newApp(fakeAuth{})
	sess := signedInSession()
	ctx := context.Background()

	r := a.open(sess, "sales", nil)
	require.NoError(t, r.Dispatch(ctx, Event{Name: "sell", Form: MapForm{"product": "p1", "quantity": "1"}}))
	assert.Equal(t, "No products available for sale.", r.Container().AlertMessage())

	cat := a.catalogs.For(sess.ID())
	_, err := cat.AddProduct(service.ProductInput{ID: "p1", Name: "Rice", Quantity: 3})
	require.NoError(t, err)
	_, err = cat.AddProduct(service.ProductInput{ID: "p2", Name: "Salt", Quantity: 0})
	require.NoError(t, err)

	r = a.open(sess, "sales", nil)
	avail := r.Container().Get("Products").([]model.Product)
	require.Len(t, avail, 1)
	assert.Equal(t, "p1", avail[0].ID)

	require.NoError(t, r.Dispatch(ctx, Event{Name: "sell", Form: MapForm{"product": "p1", "quantity": "0"}}))
	assert.Equal(t, "Please select a product and enter a valid quantity.", r.Container().AlertMessage())
	require.NoError(t, r.Dispatch(ctx, Event{Name: "sell", Form: MapForm{"product": "", "quantity": "1"}}))
	assert.Equal(t, "Please select a product and enter a valid quantity.", r.Container().AlertMessage())
	require.NoError(t, r.Dispatch(ctx, Event{Name: "sell", Form: MapForm{"product": "p1", "quantity": "lots"}}))
	assert.Equal(t, "Please select a product and enter a valid quantity.", r.Container().AlertMessage())

	require.NoError(t, r.Dispatch(ctx, Event{Name: "sell", Form: MapForm{"product": "p1", "quantity": "5"}}))
	assert.Equal(t, "Not enough stock for Rice", r.Container().AlertMessage())
	p, _ := cat.Product("p1")
	assert.Equal(t, 3, p.Quantity)

	r = a.open(sess, "sales", nil)
	require.NoError(t, r.Dispatch(ctx, Event{Name: "sell", Form: MapForm{"product": "p1", "quantity": "2"}}))
	assert.Equal(t, "Sale complete!", r.Container().ToastMessage())
	p, _ = cat.Product("p1")
	assert.Equal(t, 1, p.Quantity)
	require.Len(t, cat.Sales(), 1)

	r = a.open(sess, "reports", nil)
	lines := r.Container().Get("Lines").([]string)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "| Rice x 2")
	assert.Contains(t, page(t, a, r), "Rice x 2")
}
