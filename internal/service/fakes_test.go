package service

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"time"

	"github.com/google/uuid"

	"market-helper-be/internal/entities"
	"market-helper-be/internal/repository"
)

// In-memory fakes for the repository and mailer interfaces. They mirror the
// store semantics the services rely on: not-found sentinels, one token row
// per user with id-preserving upserts, and ownership-scoped list queries.

type fakeUserRepo struct {
	users       map[string]*entities.User // keyed by id
	createErr   error
	resetWrites int
	failReset   error
	wipeLog     *[]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (f *fakeUserRepo) Create(email, passwordHash string) (*entities.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	now := time.Now().UTC()
	user := &entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByID(id string) (*entities.User, error) {
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) UpdatePasswordResetToken(id, token string) error {
	if f.failReset != nil {
		return f.failReset
	}
	user, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordResetToken = &token
	f.resetWrites++
	return nil
}

func (f *fakeUserRepo) List() ([]*entities.User, error) {
	var users []*entities.User
	for _, user := range f.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (f *fakeUserRepo) DeleteAll() error {
	f.users = make(map[string]*entities.User)
	if f.wipeLog != nil {
		*f.wipeLog = append(*f.wipeLog, "users")
	}
	return nil
}

type fakeTokenRepo struct {
	byUser           map[string]*entities.AuthToken // keyed by user id
	findByTokenCalls int
	wipeLog          *[]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byUser: make(map[string]*entities.AuthToken)}
}

func (f *fakeTokenRepo) FindByUser(userID string) (*entities.AuthToken, error) {
	if t, ok := f.byUser[userID]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTokenRepo) FindByToken(token string) (*entities.AuthToken, error) {
	f.findByTokenCalls++
	for _, t := range f.byUser {
		if t.Token == token {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTokenRepo) Upsert(id, userID, token string, issuedAt, expiresAt time.Time) (*entities.AuthToken, error) {
	if existing, ok := f.byUser[userID]; ok {
		// Rotation keeps the row id, same as ON CONFLICT (user_id) DO UPDATE
		existing.Token = token
		existing.IssuedAt = issuedAt
		existing.ExpiresAt = expiresAt
		copied := *existing
		return &copied, nil
	}
	created := &entities.AuthToken{
		ID:        id,
		Token:     token,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		UserID:    userID,
	}
	f.byUser[userID] = created
	copied := *created
	return &copied, nil
}

func (f *fakeTokenRepo) Delete(id, userID string) error {
	if t, ok := f.byUser[userID]; ok && t.ID == id {
		delete(f.byUser, userID)
		return nil
	}
	return repository.ErrNotFound
}

func (f *fakeTokenRepo) DeleteAll() error {
	f.byUser = make(map[string]*entities.AuthToken)
	if f.wipeLog != nil {
		*f.wipeLog = append(*f.wipeLog, "auth_tokens")
	}
	return nil
}

type fakeListRepo struct {
	lists   map[string]*entities.MarketList
	items   map[string]*entities.MarketListItem
	prices  map[string]*entities.Price
	wipeLog *[]string
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{
		lists:  make(map[string]*entities.MarketList),
		items:  make(map[string]*entities.MarketListItem),
		prices: make(map[string]*entities.Price),
	}
}

func (f *fakeListRepo) CreateList(title, userID string) (*entities.MarketList, error) {
	list := &entities.MarketList{
		ID:        uuid.NewString(),
		Title:     title,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	f.lists[list.ID] = list
	copied := *list
	return &copied, nil
}

func (f *fakeListRepo) FindListByID(listID, userID string) (*entities.MarketList, error) {
	if list, ok := f.lists[listID]; ok && list.UserID == userID {
		copied := *list
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeListRepo) UpdateListTitle(listID, userID, title string) (*entities.MarketList, error) {
	if list, ok := f.lists[listID]; ok && list.UserID == userID {
		list.Title = title
		copied := *list
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeListRepo) DeleteList(listID, userID string) error {
	list, ok := f.lists[listID]
	if !ok || list.UserID != userID {
		return repository.ErrNotFound
	}
	for itemID, item := range f.items {
		if item.MarketListID != listID {
			continue
		}
		for priceID, price := range f.prices {
			if price.MarketListItemID == itemID {
				delete(f.prices, priceID)
			}
		}
		delete(f.items, itemID)
	}
	delete(f.lists, listID)
	return nil
}

func (f *fakeListRepo) CreateItem(item *entities.MarketListItem, prices []entities.Price) (*entities.MarketListItem, []entities.Price, error) {
	created := *item
	created.ID = uuid.NewString()
	f.items[created.ID] = &created

	createdPrices := make([]entities.Price, 0, len(prices))
	for _, price := range prices {
		price.ID = uuid.NewString()
		price.MarketListItemID = created.ID
		f.prices[price.ID] = &price
		createdPrices = append(createdPrices, price)
	}
	copied := created
	return &copied, createdPrices, nil
}

func (f *fakeListRepo) FindItemByID(itemID, listID string) (*entities.MarketListItem, error) {
	if item, ok := f.items[itemID]; ok && item.MarketListID == listID {
		copied := *item
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeListRepo) ListItems(listID string) ([]*entities.MarketListItem, error) {
	var items []*entities.MarketListItem
	for _, item := range f.items {
		if item.MarketListID == listID {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (f *fakeListRepo) ListPricesByItem(itemID string) ([]entities.Price, error) {
	var prices []entities.Price
	for _, price := range f.prices {
		if price.MarketListItemID == itemID {
			prices = append(prices, *price)
		}
	}
	return prices, nil
}

func (f *fakeListRepo) DeleteItem(itemID, listID string) error {
	item, ok := f.items[itemID]
	if !ok || item.MarketListID != listID {
		return repository.ErrNotFound
	}
	for priceID, price := range f.prices {
		if price.MarketListItemID == itemID {
			delete(f.prices, priceID)
		}
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeListRepo) DeleteAll() error {
	f.lists = make(map[string]*entities.MarketList)
	f.items = make(map[string]*entities.MarketListItem)
	f.prices = make(map[string]*entities.Price)
	if f.wipeLog != nil {
		*f.wipeLog = append(*f.wipeLog, "market_lists")
	}
	return nil
}

// fakeCache is an in-memory cache.Cache. Expirations are ignored; the tests
// care about which keys exist, not when Redis would age them out.
type fakeCache struct {
	entries map[string]string
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if value, ok := f.entries[key]; ok {
		return value, nil
	}
	return "", errors.New("key not found")
}

func (f *fakeCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.entries, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	for key := range f.entries {
		if matched, err := path.Match(pattern, key); err == nil && matched {
			delete(f.entries, key)
			f.deleted = append(f.deleted, key)
		}
	}
	return nil
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return f.Set(ctx, key, string(data), expiration)
}

func (f *fakeCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := f.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (f *fakeCache) has(key string) bool {
	_, ok := f.entries[key]
	return ok
}

type sentMail struct {
	to   string
	link string
}

type fakeMailer struct {
	sent    []sentMail
	failErr error
}

func (f *fakeMailer) SendPasswordReset(toEmail, resetLink string, validFor time.Duration) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.sent = append(f.sent, sentMail{to: toEmail, link: resetLink})
	return nil
}
