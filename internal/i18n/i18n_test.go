package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT_FallsBackToEnglishThenKey(t *testing.T) {
	assert.Equal(t, "dk", T("tr", Min))
	assert.Equal(t, "min", T("de", Min))
	assert.Equal(t, "nope", T("en", Key("nope")))
}

func TestTablesHaveSameKeys(t *testing.T) {
	for key := range tables["en"] {
		_, ok := tables["tr"][key]
		assert.Truef(t, ok, "tr is missing %q", key)
	}
	for key := range tables["tr"] {
		_, ok := tables["en"][key]
		assert.Truef(t, ok, "en is missing %q", key)
	}
}

func TestClockAndSummary(t *testing.T) {
	assert.Equal(t, "00:00:00", Clock(0))
	assert.Equal(t, "00:01:05", Clock(65))
	assert.Equal(t, "01:01:01", Clock(3661))

	assert.Equal(t, "1 min 5 sec", Summary("en", 65))
	assert.Equal(t, "0 dk 9 sn", Summary("tr", 9))
}

func TestIdleNote(t *testing.T) {
	assert.Equal(t, "User worked for less than 1 minute and stayed idle for 180 seconds.", IdleNote("en", 0, 180))
	assert.Equal(t, "User worked for 12 minutes and stayed idle for 180 seconds.", IdleNote("en", 12, 180))
	assert.Equal(t, "Kullanıcı 3 dakika çalıştı ve 180 saniye boşta kaldı.", IdleNote("tr", 3, 180))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("en"))
	assert.True(t, Supported("tr"))
	assert.False(t, Supported("fr"))
}
