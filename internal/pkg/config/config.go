package config

import (
	"io"

	"github.com/diwise/ews-client/pkg/ews"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	yaml "gopkg.in/yaml.v2"
)

// FolderInfo refers to a folder either by a distinguished name such as
// "calendar" or by id
type FolderInfo struct {
	Distinguished string `yaml:"distinguished"`
	ID            string `yaml:"id"`
	ChangeKey     string `yaml:"changeKey"`
}

func (f FolderInfo) FolderID(mailbox string) ews.FolderID {
	if f.ID != "" {
		return ews.FolderID{ID: f.ID, ChangeKey: f.ChangeKey}
	}
	return ews.FolderID{Distinguished: f.Distinguished, Mailbox: mailbox}
}

func (f FolderInfo) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Distinguished, validation.Required.When(f.ID == "")),
	)
}

type Folders struct {
	Calendar FolderInfo `yaml:"calendar"`
	Tasks    FolderInfo `yaml:"tasks"`
}

func (f Folders) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Calendar),
		validation.Field(&f.Tasks),
	)
}

type UpdateInfo struct {
	ConflictResolution ews.ConflictResolution `yaml:"conflictResolution"`
	NotificationMode   ews.NotificationMode   `yaml:"notificationMode"`
}

func (u UpdateInfo) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ConflictResolution),
		validation.Field(&u.NotificationMode),
	)
}

type Config struct {
	Endpoint      string            `yaml:"endpoint"`
	ServerVersion string            `yaml:"serverVersion"`
	Mailbox       string            `yaml:"mailbox"`
	Debug         bool              `yaml:"debug"`
	Headers       map[string]string `yaml:"headers"`
	Folders       Folders           `yaml:"folders"`
	Update        UpdateInfo        `yaml:"update"`
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, validation.Required, is.URL),
		validation.Field(&c.Mailbox, is.EmailFormat),
		validation.Field(&c.Folders),
		validation.Field(&c.Update),
	)
}

func newDefaultConfig() *Config {
	return &Config{
		ServerVersion: ews.DefaultServerVersion,
		Headers:       map[string]string{},
		Folders: Folders{
			Calendar: FolderInfo{Distinguished: "calendar"},
			Tasks:    FolderInfo{Distinguished: "tasks"},
		},
		Update: UpdateInfo{
			ConflictResolution: ews.DefaultConflictResolution,
			NotificationMode:   ews.DefaultNotificationMode,
		},
	}
}

// LoadConfiguration reads a yaml configuration on top of the defaults and
// validates the result
func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := newDefaultConfig()
	err = yaml.Unmarshal(buf, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Headers == nil {
		cfg.Headers = map[string]string{}
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
