package service

import (
	"context"
	"errors"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

type fakeLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLogger) write(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+msg)
}

func (l *fakeLogger) Info(msg string)    { l.write("INFO", msg) }
func (l *fakeLogger) Warning(msg string) { l.write("WARNING", msg) }
func (l *fakeLogger) Error(msg string)   { l.write("ERROR", msg) }

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]dmn.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]dmn.User)}
}

func (r *fakeUserRepo) Save(user *dmn.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.Username == user.Username && id != user.ID {
			return errors.New("username conflict")
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (r *fakeUserRepo) ByUsername(username string) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *fakeUserRepo) IncrementGamesWon(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.GamesWon++
	r.users[id] = u
	return nil
}

type fakeGameRepo struct {
	mu      sync.Mutex
	records []dmn.GameRecord
}

func (r *fakeGameRepo) Save(record *dmn.GameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeGameRepo) ByPlayer(playerID uuid.UUID, limit int64) ([]dmn.GameRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dmn.GameRecord
	for _, rec := range r.records {
		if rec.PlayerID == playerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeGameRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeLeaderboard struct {
	mu     sync.Mutex
	boards map[string]map[uuid.UUID]int64
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{boards: make(map[string]map[uuid.UUID]int64)}
}

func (l *fakeLeaderboard) Record(_ context.Context, board string, player uuid.UUID, ticks int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.boards[board] == nil {
		l.boards[board] = make(map[uuid.UUID]int64)
	}
	if best, ok := l.boards[board][player]; ok && best <= ticks {
		return false, nil
	}
	l.boards[board][player] = ticks
	return true, nil
}

func (l *fakeLeaderboard) Top(_ context.Context, board string, n int64) ([]dmn.LeaderboardEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []dmn.LeaderboardEntry
	for id, ticks := range l.boards[board] {
		out = append(out, dmn.LeaderboardEntry{PlayerID: id, Ticks: ticks})
	}
	return out, nil
}

func (l *fakeLeaderboard) best(board string, player uuid.UUID) (int64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ticks, ok := l.boards[board][player]
	return ticks, ok
}

type fakeTokenizer struct {
	fail bool
}

func (f *fakeTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	if f.fail {
		return "", errors.New("signing failed")
	}
	return "token-for-" + claims["username"].(string), nil
}

func (f *fakeTokenizer) Decode(token string) (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
