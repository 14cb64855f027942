package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/velmart/ecommerce-api/models"
)

// MemoryStore is a map-backed Store with the same observable semantics as
// GormStore. Handler tests run against it instead of a live database.
type MemoryStore struct {
	mu sync.Mutex

	users     map[string]models.User
	products  map[string]models.Product
	cart      map[string]models.CartItem
	orders    map[string]models.Order
	wishlists map[string]models.Wishlist // keyed by user id
	members   map[string]map[string]bool // wishlist id -> product id set

	seq   int64
	order map[string]int64 // record id -> insertion sequence
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]models.User),
		products:  make(map[string]models.Product),
		cart:      make(map[string]models.CartItem),
		orders:    make(map[string]models.Order),
		wishlists: make(map[string]models.Wishlist),
		members:   make(map[string]map[string]bool),
		order:     make(map[string]int64),
	}
}

func (m *MemoryStore) next(id string) {
	m.seq++
	m.order[id] = m.seq
}

// WithinTx snapshots all state and restores it when fn fails, mirroring a
// rolled-back database transaction.
func (m *MemoryStore) WithinTx(fn func(Store) error) error {
	m.mu.Lock()
	users := copyMap(m.users)
	products := copyMap(m.products)
	cart := copyMap(m.cart)
	orders := copyMap(m.orders)
	wishlists := copyMap(m.wishlists)
	members := make(map[string]map[string]bool, len(m.members))
	for k, v := range m.members {
		members[k] = copyMap(v)
	}
	seqs := copyMap(m.order)
	seq := m.seq
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.users, m.products, m.cart = users, products, cart
		m.orders, m.wishlists, m.members = orders, wishlists, members
		m.order, m.seq = seqs, seq
		m.mu.Unlock()
		return err
	}
	return nil
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// -------- users --------

func (m *MemoryStore) CreateUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	m.next(u.ID)
	return nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// -------- products --------

func (m *MemoryStore) CreateProduct(p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.products[p.ID] = *p
	m.next(p.ID)
	return nil
}

func (m *MemoryStore) GetProduct(id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryStore) GetProductForUpdate(id string) (*models.Product, error) {
	return m.GetProduct(id)
}

func (m *MemoryStore) ListProducts(f ProductFilter) ([]models.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []models.Product
	for _, p := range m.products {
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less bool
		switch f.SortBy {
		case "price":
			less = a.Price < b.Price
		case "name":
			less = a.Name < b.Name
		case "stock":
			less = a.Stock < b.Stock
		default:
			less = m.order[a.ID] < m.order[b.ID]
		}
		if f.SortOrder == "desc" {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	return slicePage(matched, f.Page, f.Limit), total, nil
}

func (m *MemoryStore) UpdateProduct(p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now()
	m.products[p.ID] = *p
	return nil
}

func (m *MemoryStore) DeleteProduct(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *MemoryStore) AllProducts() ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var products []models.Product
	for _, p := range m.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return m.order[products[i].ID] < m.order[products[j].ID]
	})
	return products, nil
}

// -------- cart --------

func (m *MemoryStore) withProduct(item models.CartItem) models.CartItem {
	if p, ok := m.products[item.ProductID]; ok {
		item.Product = p
	}
	return item
}

func (m *MemoryStore) GetCartLineByProduct(userID, productID string) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.cart {
		if item.UserID == userID && item.ProductID == productID {
			line := m.withProduct(item)
			return &line, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetCartLine(userID, lineID string) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.cart[lineID]
	if !ok || item.UserID != userID {
		return nil, ErrNotFound
	}
	line := m.withProduct(item)
	return &line, nil
}

func (m *MemoryStore) CreateCartLine(item *models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	stored := *item
	stored.Product = models.Product{}
	m.cart[item.ID] = stored
	m.next(item.ID)
	*item = m.withProduct(stored)
	return nil
}

func (m *MemoryStore) SaveCartLine(item *models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cart[item.ID]; !ok {
		return ErrNotFound
	}
	item.UpdatedAt = time.Now()
	stored := *item
	stored.Product = models.Product{}
	m.cart[item.ID] = stored
	*item = m.withProduct(stored)
	return nil
}

func (m *MemoryStore) DeleteCartLine(userID, lineID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.cart[lineID]
	if !ok || item.UserID != userID {
		return ErrNotFound
	}
	delete(m.cart, lineID)
	return nil
}

func (m *MemoryStore) userCartLines(userID string) []models.CartItem {
	var items []models.CartItem
	for _, item := range m.cart {
		if item.UserID == userID {
			items = append(items, m.withProduct(item))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return m.order[items[i].ID] < m.order[items[j].ID]
	})
	return items
}

func (m *MemoryStore) ListCartLines(userID string, page, limit int) ([]models.CartItem, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.userCartLines(userID)
	return slicePage(items, page, limit), int64(len(items)), nil
}

func (m *MemoryStore) CountCartLines(userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, item := range m.cart {
		if item.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (m *MemoryStore) AllCartLines(userID string) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userCartLines(userID), nil
}

func (m *MemoryStore) ClearCart(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, item := range m.cart {
		if item.UserID == userID {
			delete(m.cart, id)
		}
	}
	return nil
}

// -------- orders --------

func (m *MemoryStore) CreateOrder(o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.CreatedAt = time.Now()
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.NewString()
		}
		o.Items[i].OrderID = o.ID
	}
	m.orders[o.ID] = *o
	m.next(o.ID)
	return nil
}

func (m *MemoryStore) ListOrders(userID string, page, limit int) ([]models.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			expanded := o
			expanded.Items = append([]models.OrderItem(nil), o.Items...)
			for i := range expanded.Items {
				if p, ok := m.products[expanded.Items[i].ProductID]; ok {
					expanded.Items[i].Product = p
				}
			}
			orders = append(orders, expanded)
		}
	}
	// newest first
	sort.Slice(orders, func(i, j int) bool {
		return m.order[orders[i].ID] > m.order[orders[j].ID]
	})
	return slicePage(orders, page, limit), int64(len(orders)), nil
}

// -------- wishlist --------

func (m *MemoryStore) GetWishlist(userID string) (*models.Wishlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wishlists[userID]
	if !ok {
		return nil, ErrNotFound
	}
	w.Products = nil
	var productIDs []string
	for id := range m.members[w.ID] {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool {
		return m.order[productIDs[i]] < m.order[productIDs[j]]
	})
	for _, id := range productIDs {
		if p, ok := m.products[id]; ok {
			w.Products = append(w.Products, p)
		}
	}
	return &w, nil
}

func (m *MemoryStore) CreateWishlist(w *models.Wishlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wishlists[w.UserID]; ok {
		return ErrDuplicate
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	w.CreatedAt = time.Now()
	m.wishlists[w.UserID] = *w
	m.members[w.ID] = make(map[string]bool)
	m.next(w.ID)
	return nil
}

func (m *MemoryStore) WishlistHasProduct(wishlistID, productID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.members[wishlistID][productID], nil
}

func (m *MemoryStore) AddWishlistProduct(w *models.Wishlist, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.members[w.ID]
	if !ok {
		return ErrNotFound
	}
	set[p.ID] = true
	return nil
}

func (m *MemoryStore) RemoveWishlistProduct(w *models.Wishlist, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.members[w.ID]
	if !ok {
		return ErrNotFound
	}
	delete(set, p.ID)
	return nil
}

func slicePage[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
