package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/todo/internal/model"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "█████ 100%", ProgressBar(9, 9, 5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
	assert.Equal(t, "待办事...", Truncate("待办事项提醒事项", 6))
}

func TestMessagesAndPanel(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	assert.Contains(t, buf.String(), "x added")
	assert.Contains(t, buf.String(), "✖ nope")

	out := PanelString([]string{"Todos", "line"})
	assert.Contains(t, out, "Todos")
	assert.Contains(t, out, "┌")
}

func TestWithSwatches_MonoIgnoresPalette(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")
	th := Current().WithSwatches(model.BackgroundPalette[1], model.CardPalette[2])
	assert.Equal(t, "mono", th.Name)
}
