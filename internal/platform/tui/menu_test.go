package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/records"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func updateMenu(t *testing.T, m MenuModel, keys ...string) MenuModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(MenuModel)
	}
	return m
}

func TestMenuNavigation(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		choice MenuChoice
	}{
		{"play", []string{"enter"}, ChoicePlay},
		{"scores", []string{"down", "enter"}, ChoiceScores},
		{"quit item", []string{"j", "j", "enter"}, ChoiceQuit},
		{"cursor stops at bottom", []string{"down", "down", "down", "up", "enter"}, ChoiceScores},
		{"cursor stops at top", []string{"up", "enter"}, ChoicePlay},
		{"tab opens scores", []string{"tab"}, ChoiceScores},
		{"q quits", []string{"q"}, ChoiceQuit},
		{"browsing", []string{"down"}, ChoiceNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := updateMenu(t, NewMenuModel(nil, config.DifficultyNormal, 80, 24), tc.keys...)
			if m.Choice() != tc.choice {
				t.Errorf("Choice() = %v, expected %v", m.Choice(), tc.choice)
			}
		})
	}
}

func TestMenuDifficultySelector(t *testing.T) {
	tests := []struct {
		keys     []string
		expected config.Difficulty
	}{
		{nil, config.DifficultyNormal},
		{[]string{"left"}, config.DifficultyEasy},
		{[]string{"left", "left"}, config.DifficultyEasy},
		{[]string{"right", "right"}, config.DifficultyHard},
		{[]string{"3"}, config.DifficultyHard},
		{[]string{"3", "1"}, config.DifficultyEasy},
	}

	for _, tc := range tests {
		m := updateMenu(t, NewMenuModel(nil, config.DifficultyNormal, 80, 24), tc.keys...)
		if m.Difficulty() != tc.expected {
			t.Errorf("keys %v: Difficulty() = %v, expected %v", tc.keys, m.Difficulty(), tc.expected)
		}
	}
}

func TestMenuInvalidLevelFallsBack(t *testing.T) {
	m := NewMenuModel(nil, config.Difficulty(9), 80, 24)
	if m.Difficulty() != config.DifficultyNormal {
		t.Errorf("Difficulty() = %v, expected normal", m.Difficulty())
	}
}

func TestMenuViewShowsBestScore(t *testing.T) {
	tracker, err := records.NewTracker(nil, 0)
	if err != nil {
		t.Fatalf("NewTracker() failed: %v", err)
	}
	if _, err := tracker.RecordIfHighScore(config.DifficultyHard, 42); err != nil {
		t.Fatalf("RecordIfHighScore() failed: %v", err)
	}

	m := NewMenuModel(tracker, config.DifficultyHard, 80, 24)
	view := m.View()
	if !strings.Contains(view, "Best: 42") {
		t.Errorf("menu view missing best score:\n%s", view)
	}
	if !strings.Contains(view, "[hard]") {
		t.Errorf("menu view missing selected level:\n%s", view)
	}
}

type fakeHistory struct {
	games map[config.Difficulty][]storage.GameEntry
	err   error
	asked []config.Difficulty
}

func (f *fakeHistory) TopGames(d config.Difficulty, _ int) ([]storage.GameEntry, error) {
	f.asked = append(f.asked, d)
	if f.err != nil {
		return nil, f.err
	}
	return f.games[d], nil
}

func TestScoreboardLoadsSelectedLevel(t *testing.T) {
	played := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	history := &fakeHistory{games: map[config.Difficulty][]storage.GameEntry{
		config.DifficultyNormal: {
			{Score: 12, Apples: 12, Duration: 95 * time.Second, PlayedAt: played},
			{Score: 4, Apples: 4, Duration: 20 * time.Second, PlayedAt: played},
		},
		config.DifficultyHard: {
			{Score: 30, Apples: 30, Duration: time.Minute, PlayedAt: played},
		},
	}}

	m := NewScoreboardModel(nil, history, config.DifficultyNormal, 100, 30)
	if got := len(m.table.Rows()); got != 2 {
		t.Fatalf("rows = %d, expected 2", got)
	}
	row := m.table.Rows()[0]
	if row[0] != "#1" || row[1] != "12" || row[3] != "1:35" {
		t.Errorf("first row = %v", row)
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(ScoreboardModel)
	if m.level() != config.DifficultyHard {
		t.Errorf("level() = %v, expected hard", m.level())
	}
	if got := len(m.table.Rows()); got != 1 {
		t.Errorf("rows = %d, expected 1", got)
	}

	next, _ = m.Update(keyMsg("tab"))
	m = next.(ScoreboardModel)
	if m.level() != config.DifficultyEasy {
		t.Errorf("level() = %v, expected tab to wrap to easy", m.level())
	}

	next, _ = m.Update(keyMsg("left"))
	m = next.(ScoreboardModel)
	if m.level() != config.DifficultyHard {
		t.Errorf("level() = %v, expected left to wrap to hard", m.level())
	}

	expected := []config.Difficulty{config.DifficultyNormal, config.DifficultyHard, config.DifficultyEasy, config.DifficultyHard}
	if len(history.asked) != len(expected) {
		t.Fatalf("TopGames calls = %v, expected %v", history.asked, expected)
	}
	for i := range expected {
		if history.asked[i] != expected[i] {
			t.Errorf("TopGames call %d = %v, expected %v", i, history.asked[i], expected[i])
		}
	}
}

func TestScoreboardEmptyStates(t *testing.T) {
	tests := []struct {
		name    string
		history HistorySource
		text    string
	}{
		{"no history store", nil, "needs a database"},
		{"load error", &fakeHistory{err: errors.New("boom")}, "boom"},
		{"no games", &fakeHistory{}, "No games recorded yet"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewScoreboardModel(nil, tc.history, config.DifficultyNormal, 60, 30)
			if view := m.View(); !strings.Contains(view, tc.text) {
				t.Errorf("view missing %q:\n%s", tc.text, view)
			}
		})
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, nil, config.DifficultyNormal, 80, 24)

	next, cmd := m.Update(keyMsg("esc"))
	back := next.(ScoreboardModel)
	if !back.IsGoingBack() || back.IsQuitting() {
		t.Error("esc should go back")
	}
	if cmd == nil {
		t.Error("back should end a standalone scoreboard program")
	}

	next, _ = m.Update(keyMsg("q"))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0:00"},
		{9 * time.Second, "0:09"},
		{95 * time.Second, "1:35"},
		{61*time.Minute + 1500*time.Millisecond, "61:02"},
	}

	for _, tc := range tests {
		if got := formatDuration(tc.d); got != tc.expected {
			t.Errorf("formatDuration(%v) = %q, expected %q", tc.d, got, tc.expected)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		key      tea.KeyMsg
		expected MenuAction
	}{
		{keyMsg("k"), MenuActionUp},
		{keyMsg("down"), MenuActionDown},
		{keyMsg("h"), MenuActionLeft},
		{keyMsg("d"), MenuActionRight},
		{keyMsg("enter"), MenuActionSelect},
		{keyMsg("esc"), MenuActionBack},
		{keyMsg("tab"), MenuActionScoreboard},
		{keyMsg("ctrl+c"), MenuActionQuit},
		{keyMsg("x"), MenuActionNone},
	}

	for _, tc := range tests {
		if got := MapKeyToMenuAction(tc.key); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.key.String(), got, tc.expected)
		}
	}
}
