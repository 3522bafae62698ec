// Package store owns all mutable domain state: user and spot registries, the
// per-user ranked lists, the follow graph and the activity feed. It is a
// volatile in-memory structure rebuilt from a seed on restart.
package store

import (
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	"github.com/stelihq/steli-backend/internal/models"
)

// FeedPolicy controls how many feed events a single ranking replace may emit.
type FeedPolicy int

const (
	// FeedFirstAddedOnly emits one event per replace, for the first item in
	// the new order whose spot wasn't ranked before.
	FeedFirstAddedOnly FeedPolicy = iota
	// FeedEveryAdded emits one event per newly added spot, in rank order.
	FeedEveryAdded
)

// feedRetention caps the feed log; oldest events are dropped first.
const feedRetention = 500

// Store is the single owner of domain state. One RWMutex guards everything:
// the replace-rankings operation must appear atomic to readers, and the other
// entity families are cheap enough that finer locking buys nothing.
type Store struct {
	mu sync.RWMutex

	users       map[int]*models.User
	usersByName map[string]int // canonical username -> id

	spots       map[int]*models.Spot
	spotsByName map[string]int // normalized name -> id

	rankings map[int][]*models.Ranking // user id -> list in rank order

	follows map[models.Follow]struct{}

	feed       []models.FeedEvent
	feedPolicy FeedPolicy

	nextUserID    int
	nextSpotID    int
	nextRankingID int
	nextEventID   int

	rng *rand.Rand
	now func() time.Time
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithFeedPolicy overrides the default first-added-only feed emission.
func WithFeedPolicy(p FeedPolicy) Option {
	return func(s *Store) { s.feedPolicy = p }
}

// WithRand injects the matchup sampler's randomness source.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rng = r }
}

// WithClock injects the time source used for default timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		users:         make(map[int]*models.User),
		usersByName:   make(map[string]int),
		spots:         make(map[int]*models.Spot),
		spotsByName:   make(map[string]int),
		rankings:      make(map[int][]*models.Ranking),
		follows:       make(map[models.Follow]struct{}),
		feedPolicy:    FeedFirstAddedOnly,
		nextUserID:    1,
		nextSpotID:    1,
		nextRankingID: 1,
		nextEventID:   1,
		rng:           rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// canonicalUsername is the single normalization applied at every username
// lookup and insert site.
func canonicalUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// normalizeSpotName is the dedup key for spots.
func normalizeSpotName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copySpot(sp *models.Spot) *models.Spot {
	c := *sp
	return &c
}

// ── Users ──────────────────────────────────────────────────────────────────

// CreateUser registers a new user. Usernames are unique case-insensitively.
func (s *Store) CreateUser(username, password, firstName, lastName string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := canonicalUsername(username)
	if _, taken := s.usersByName[key]; taken {
		return nil, ErrDuplicateUsername
	}

	u := &models.User{
		ID:        s.nextUserID,
		Username:  username,
		Password:  string(hash),
		FirstName: firstName,
		LastName:  lastName,
	}
	s.nextUserID++
	s.users[u.ID] = u
	s.usersByName[key] = u.ID
	s.rankings[u.ID] = nil

	return copyUser(u), nil
}

// VerifyCredential checks a username/password pair. Unknown username and
// wrong password collapse to the same error.
func (s *Store) VerifyCredential(username, password string) (*models.User, error) {
	s.mu.RLock()
	id, ok := s.usersByName[canonicalUsername(username)]
	var u *models.User
	if ok {
		u = copyUser(s.users[id])
	}
	s.mu.RUnlock()

	if u == nil {
		return nil, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	return u, nil
}

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByName[canonicalUsername(username)]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(s.users[id]), nil
}

func (s *Store) GetUserByID(id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

// SearchUsers returns users whose username or name contains q,
// case-insensitively, ordered by id. An empty q matches everyone.
func (s *Store) SearchUsers(q string) []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q = strings.ToLower(strings.TrimSpace(q))
	matches := lo.Filter(lo.Values(s.users), func(u *models.User, _ int) bool {
		return strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q)
	})
	results := lo.Map(matches, func(u *models.User, _ int) *models.User {
		return copyUser(u)
	})
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

// ── Follow graph ───────────────────────────────────────────────────────────

// Follow inserts a directed edge. Inserting twice is a no-op; self-follows
// are rejected.
func (s *Store) Follow(followerID, followeeID int) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.follows[models.Follow{FollowerID: followerID, FolloweeID: followeeID}] = struct{}{}
	return nil
}

// Unfollow removes an edge; removing a missing edge is a no-op.
func (s *Store) Unfollow(followerID, followeeID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.follows, models.Follow{FollowerID: followerID, FolloweeID: followeeID})
}

func (s *Store) IsFollowing(followerID, followeeID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.follows[models.Follow{FollowerID: followerID, FolloweeID: followeeID}]
	return ok
}

func (s *Store) FollowersCount(userID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for k := range s.follows {
		if k.FolloweeID == userID {
			n++
		}
	}
	return n
}

func (s *Store) FollowingCount(userID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for k := range s.follows {
		if k.FollowerID == userID {
			n++
		}
	}
	return n
}

// GetFollowers returns the users following userID, ordered by id.
func (s *Store) GetFollowers(userID int) []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*models.User
	for k := range s.follows {
		if k.FolloweeID == userID {
			if u, ok := s.users[k.FollowerID]; ok {
				results = append(results, copyUser(u))
			}
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

// GetFollowing returns the users userID follows, ordered by id.
func (s *Store) GetFollowing(userID int) []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*models.User
	for k := range s.follows {
		if k.FollowerID == userID {
			if u, ok := s.users[k.FolloweeID]; ok {
				results = append(results, copyUser(u))
			}
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

// followeeSet returns the ids userID follows. Caller must hold the lock.
func (s *Store) followeeSet(userID int) map[int]struct{} {
	set := make(map[int]struct{})
	for k := range s.follows {
		if k.FollowerID == userID {
			set[k.FolloweeID] = struct{}{}
		}
	}
	return set
}

// ── Spots ──────────────────────────────────────────────────────────────────

// getOrCreateSpotLocked is the sole creation path for spots. Caller must hold
// the write lock.
func (s *Store) getOrCreateSpotLocked(name, category string) *models.Spot {
	key := normalizeSpotName(name)
	if id, ok := s.spotsByName[key]; ok {
		sp := s.spots[id]
		// Backfill only while the stored category is empty; never overwrite.
		if category != "" && sp.Category == "" {
			sp.Category = category
		}
		return sp
	}

	sp := &models.Spot{
		ID:       s.nextSpotID,
		Name:     strings.TrimSpace(name),
		Category: category,
	}
	s.nextSpotID++
	s.spots[sp.ID] = sp
	s.spotsByName[key] = sp.ID
	return sp
}

// GetOrCreateSpot looks up a spot by normalized name, creating it if absent.
func (s *Store) GetOrCreateSpot(name, category string) *models.Spot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copySpot(s.getOrCreateSpotLocked(name, category))
}

// ListSpots returns every spot ordered by id.
func (s *Store) ListSpots() []*models.Spot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := lo.Map(lo.Values(s.spots), func(sp *models.Spot, _ int) *models.Spot {
		return copySpot(sp)
	})
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

// SearchSpots returns spots whose name or category contains q,
// case-insensitively, ordered by id.
func (s *Store) SearchSpots(q string) []*models.Spot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q = strings.ToLower(strings.TrimSpace(q))
	matches := lo.Filter(lo.Values(s.spots), func(sp *models.Spot, _ int) bool {
		return strings.Contains(strings.ToLower(sp.Name), q) ||
			strings.Contains(strings.ToLower(sp.Category), q)
	})
	results := lo.Map(matches, func(sp *models.Spot, _ int) *models.Spot {
		return copySpot(sp)
	})
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

// ── Rankings ───────────────────────────────────────────────────────────────

// SetRankings replaces the user's entire ranked list (index 0 = rank 1) and
// returns the new list as views. The whole replace runs in one critical
// section: readers see either the old complete list or the new one.
//
// A feed event is emitted only when the replace introduces a spot name absent
// from the previous list; pure reorders and score edits stay silent. How many
// events an introduction emits is governed by the store's FeedPolicy.
func (s *Store) SetRankings(userID int, items []models.RankedItem) []*models.RankingView {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Snapshot the normalized names ranked before the replace.
	oldNames := make(map[string]struct{})
	for _, r := range s.rankings[userID] {
		if sp, ok := s.spots[r.SpotID]; ok {
			oldNames[normalizeSpotName(sp.Name)] = struct{}{}
		}
	}

	now := s.now()
	newList := make([]*models.Ranking, 0, len(items))
	for i, item := range items {
		sp := s.getOrCreateSpotLocked(item.SpotName, item.Category)
		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		r := &models.Ranking{
			ID:        s.nextRankingID,
			UserID:    userID,
			SpotID:    sp.ID,
			Rank:      i + 1,
			Score:     item.Score,
			Tier:      ScoreToTier(item.Score),
			Notes:     item.Notes,
			PhotoURL:  item.PhotoURL,
			CreatedAt: createdAt,
		}
		s.nextRankingID++
		newList = append(newList, r)
	}
	s.rankings[userID] = newList

	s.emitFeedEventsLocked(userID, newList, oldNames)

	return s.rankingViewsLocked(userID)
}

// emitFeedEventsLocked diffs the new list against the pre-replace name set
// and appends events for genuinely new spots. Caller must hold the write lock.
func (s *Store) emitFeedEventsLocked(userID int, newList []*models.Ranking, oldNames map[string]struct{}) {
	user, ok := s.users[userID]
	if !ok {
		return
	}

	seen := make(map[string]struct{})
	for _, r := range newList {
		sp, ok := s.spots[r.SpotID]
		if !ok {
			continue
		}
		key := normalizeSpotName(sp.Name)
		if _, existed := oldNames[key]; existed {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		s.appendFeedEventLocked(user, sp, r)
		if s.feedPolicy == FeedFirstAddedOnly {
			return
		}
	}
}

func (s *Store) appendFeedEventLocked(user *models.User, sp *models.Spot, r *models.Ranking) {
	ev := models.FeedEvent{
		ID:           s.nextEventID,
		UserID:       user.ID,
		Username:     user.Username,
		SpotID:       sp.ID,
		SpotName:     sp.Name,
		SpotCategory: sp.Category,
		Score:        r.Score,
		Tier:         r.Tier,
		CreatedAt:    r.CreatedAt,
	}
	s.nextEventID++
	s.feed = append(s.feed, ev)
	if len(s.feed) > feedRetention {
		s.feed = s.feed[len(s.feed)-feedRetention:]
	}
}

// rankingViewsLocked materializes a user's list with resolved spots and
// derived ratings. Caller must hold at least the read lock.
func (s *Store) rankingViewsLocked(userID int) []*models.RankingView {
	list := s.rankings[userID]
	views := make([]*models.RankingView, 0, len(list))
	for _, r := range list {
		sp := s.spots[r.SpotID]
		views = append(views, &models.RankingView{
			Ranking: *r,
			Spot:    copySpot(sp),
			Rating:  ScoreToRating(r.Score),
		})
	}
	return views
}

// GetUserRankings returns the user's list in rank order.
func (s *Store) GetUserRankings(userID int) []*models.RankingView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.rankingViewsLocked(userID)
}

func (s *Store) RankedCount(userID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rankings[userID])
}

// ── Feed ───────────────────────────────────────────────────────────────────

// sortedFeedLocked returns events newest-first; equal timestamps keep
// newest-insertion-first order. Caller must hold at least the read lock.
func (s *Store) sortedFeedLocked(filter func(models.FeedEvent) bool) []models.FeedEvent {
	events := make([]models.FeedEvent, 0, len(s.feed))
	for i := len(s.feed) - 1; i >= 0; i-- {
		if filter == nil || filter(s.feed[i]) {
			events = append(events, s.feed[i])
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events
}

// GetFeed returns recent events by users that userID follows, newest first.
func (s *Store) GetFeed(userID, limit int) []models.FeedEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	followees := s.followeeSet(userID)
	events := s.sortedFeedLocked(func(ev models.FeedEvent) bool {
		_, ok := followees[ev.UserID]
		return ok
	})
	return truncateEvents(events, limit)
}

// GetRecentRankings returns recent events across all users, newest first.
func (s *Store) GetRecentRankings(limit int) []models.FeedEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return truncateEvents(s.sortedFeedLocked(nil), limit)
}

func truncateEvents(events []models.FeedEvent, limit int) []models.FeedEvent {
	if limit < 0 {
		limit = 0
	}
	if len(events) > limit {
		events = events[:limit]
	}
	return events
}

// ── Matchups ───────────────────────────────────────────────────────────────

// GetMatchup draws two distinct spots uniformly at random from the full
// catalog. Takes the write lock because the sampler's state advances.
func (s *Store) GetMatchup() (*models.Matchup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.spots) < 2 {
		return nil, ErrInsufficientSpots
	}

	catalog := lo.Values(s.spots)
	sort.Slice(catalog, func(i, j int) bool { return catalog[i].ID < catalog[j].ID })

	i := s.rng.IntN(len(catalog))
	j := s.rng.IntN(len(catalog) - 1)
	if j >= i {
		j++
	}
	return &models.Matchup{
		SpotA: copySpot(catalog[i]),
		SpotB: copySpot(catalog[j]),
	}, nil
}

// ── Lifecycle ──────────────────────────────────────────────────────────────

// Health reports store status for the health endpoint.
func (s *Store) Health() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, list := range s.rankings {
		total += len(list)
	}
	return map[string]string{
		"status":      "up",
		"users":       strconv.Itoa(len(s.users)),
		"spots":       strconv.Itoa(len(s.spots)),
		"rankings":    strconv.Itoa(total),
		"feed_events": strconv.Itoa(len(s.feed)),
	}
}
