package config

import (
	"bytes"
	"testing"

	"github.com/diwise/ews-client/pkg/ews"
	"github.com/matryer/is"
)

func TestLoadConfig(t *testing.T) {
	is, cfg := setupConfigTest(t, configFile)

	is.Equal(cfg.Endpoint, "https://mail.example.com/EWS/Exchange.asmx")
	is.Equal(cfg.ServerVersion, "Exchange2016")
	is.Equal(cfg.Headers["X-AnchorMailbox"], "room@example.com")
	is.Equal(cfg.Update.ConflictResolution, ews.AlwaysOverwrite)
	is.Equal(cfg.Update.NotificationMode, ews.DefaultNotificationMode) // should keep the default
}

func TestLoadFolders(t *testing.T) {
	is, cfg := setupConfigTest(t, configFile)

	calendar := cfg.Folders.Calendar.FolderID(cfg.Mailbox)
	is.Equal(calendar, ews.FolderID{Distinguished: "calendar", Mailbox: "room@example.com"})

	tasks := cfg.Folders.Tasks.FolderID(cfg.Mailbox)
	is.Equal(tasks, ews.FolderID{ID: "AQMk", ChangeKey: "AQAA"})
}

func TestDefaults(t *testing.T) {
	is, cfg := setupConfigTest(t, "endpoint: http://localhost:8080/EWS/Exchange.asmx\n")

	is.Equal(cfg.ServerVersion, ews.DefaultServerVersion)
	is.Equal(cfg.Folders.Calendar.Distinguished, "calendar")
	is.Equal(cfg.Update.ConflictResolution, ews.DefaultConflictResolution)
}

func TestInvalidConfig(t *testing.T) {
	is := is.New(t)

	for _, cfg := range []string{
		"serverVersion: Exchange2016\n",
		"endpoint: http://localhost\nupdate:\n  conflictResolution: Sometimes\n",
		"endpoint: http://localhost\nfolders:\n  calendar:\n    distinguished: \"\"\n",
	} {
		_, err := LoadConfiguration(bytes.NewBufferString(cfg))
		is.True(err != nil) // configuration should be rejected
	}
}

func setupConfigTest(t *testing.T, data string) (*is.I, *Config) {
	is := is.New(t)
	cfg, err := LoadConfiguration(bytes.NewBufferString(data))
	is.NoErr(err)

	return is, cfg
}

var configFile string = `
endpoint: https://mail.example.com/EWS/Exchange.asmx
serverVersion: Exchange2016
mailbox: room@example.com
headers:
  X-AnchorMailbox: room@example.com
folders:
  tasks:
    id: AQMk
    changeKey: AQAA
update:
  conflictResolution: AlwaysOverwrite
`
