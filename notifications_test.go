package main

import (
	"fmt"
	"sync"
	"testing"
	"testing/quick"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seleniumguide/i18n"
)

func TestNotificationCenter_Levels(t *testing.T) {
	n := NewNotificationCenter(10, i18n.English, nil)

	info := n.Info("practice.saved", "/tmp/page.html")
	ok := n.Success("export.success", "Section_01_Selenium_Basics.pptx")
	failed := n.Error(ErrorCodeExportFailed, "zip: write error", "export.failed", "Section_01_Selenium_Basics.pptx")

	assert.Equal(t, LevelInfo, info.Level)
	assert.Equal(t, "Practice page saved to /tmp/page.html", info.Message)
	assert.Nil(t, info.Error)

	assert.Equal(t, LevelSuccess, ok.Level)
	assert.Equal(t, "Section_01_Selenium_Basics.pptx is ready", ok.Message)

	assert.Equal(t, LevelError, failed.Level)
	assert.Equal(t, "Could not generate Section_01_Selenium_Basics.pptx. Please try again.", failed.Message)
	require.NotNil(t, failed.Error)
	assert.Equal(t, ErrorCodeExportFailed, failed.Error.Code)
	assert.Equal(t, "zip: write error", failed.Error.Details)
	assert.Equal(t, []string{"Try again", "If it keeps failing, check the server log"}, failed.Error.RecoverySuggestions)

	assert.NotEqual(t, info.ID, ok.ID)
	assert.NotEqual(t, ok.ID, failed.ID)
}

func TestNotificationCenter_UnknownCodeSuggestsRetry(t *testing.T) {
	n := NewNotificationCenter(10, i18n.English, nil)

	got := n.Error("SOMETHING_ELSE", "", "server.internal_error")
	require.NotNil(t, got.Error)
	assert.Equal(t, []string{"Try again"}, got.Error.RecoverySuggestions)
}

func TestNotificationCenter_Language(t *testing.T) {
	n := NewNotificationCenter(10, i18n.Chinese, nil)
	zh := n.Error(ErrorCodeSectionNotFound, "nope", "export.section_not_found", "nope")

	n.SetLanguage(i18n.English)
	en := n.Error(ErrorCodeSectionNotFound, "nope", "export.section_not_found", "nope")

	assert.Equal(t, i18n.English, n.Language())
	assert.NotEqual(t, zh.Message, en.Message)
	assert.Equal(t, `Section "nope" was not found`, en.Message)
	assert.Len(t, en.Error.RecoverySuggestions, 2)
}

func TestNotificationCenter_RecentNewestFirst(t *testing.T) {
	n := NewNotificationCenter(10, i18n.English, nil)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	n.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	for i := 1; i <= 3; i++ {
		n.Success("export.success", fmt.Sprintf("file-%d", i))
	}

	recent := n.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "file-3 is ready", recent[0].Message)
	assert.Equal(t, "file-1 is ready", recent[2].Message)
	assert.True(t, recent[0].Time.After(recent[1].Time))

	assert.Len(t, n.Recent(2), 2)
	assert.Len(t, n.Recent(100), 3)

	n.Clear()
	assert.Empty(t, n.Recent(0))
}

func TestNotificationCenter_Logs(t *testing.T) {
	logger, logs := newTestLogger()
	n := NewNotificationCenter(10, i18n.English, logger)

	n.Success("export.success", "deck.pptx")
	require.Len(t, *logs, 1)
	assert.Equal(t, "[notify] success: deck.pptx is ready", (*logs)[0])
}

func TestNotificationCenter_ConcurrentPush(t *testing.T) {
	n := NewNotificationCenter(1000, i18n.English, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n.Info("practice.saved", i)
		}(i)
	}
	wg.Wait()

	recent := n.Recent(0)
	assert.Len(t, recent, 50)
	ids := make(map[string]bool)
	for _, item := range recent {
		ids[item.ID] = true
	}
	assert.Len(t, ids, 50)
}

// The center never holds more than its limit and always keeps the newest.
func TestNotificationCenter_BoundedProperty(t *testing.T) {
	f := func(limit, pushes uint8) bool {
		l := int(limit%20) + 1
		p := int(pushes % 60)

		n := NewNotificationCenter(l, i18n.English, nil)
		var last Notification
		for i := 0; i < p; i++ {
			last = n.Info("practice.saved", i)
		}

		recent := n.Recent(0)
		want := p
		if want > l {
			want = l
		}
		if len(recent) != want {
			return false
		}
		return p == 0 || recent[0].ID == last.ID
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
