// Package seed holds the embedded development data set and its loader.
package seed

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/forgo/clubs/api/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed clubs.yaml
var defaultData []byte

// Dataset is a set of owners, their clubs, and the clubs' events
type Dataset struct {
	Owners []Owner `yaml:"owners"`
	Clubs  []Club  `yaml:"clubs"`
}

// Owner is a club owner account
type Owner struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

// Club is a club and its events; Owner is the owning account's email
type Club struct {
	Name        string  `yaml:"name"`
	Owner       string  `yaml:"owner"`
	MeetingTime string  `yaml:"meeting_time"`
	Location    string  `yaml:"location"`
	JoinType    string  `yaml:"join_type"`
	Deadline    *string `yaml:"deadline"`
	Description string  `yaml:"description"`
	Events      []Event `yaml:"events"`
}

// Event is a scheduled club event
type Event struct {
	Title       string `yaml:"title"`
	StartTime   string `yaml:"start_time"`
	EndTime     string `yaml:"end_time"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
}

// Default returns the embedded development data set
func Default() (*Dataset, error) {
	return Parse(defaultData)
}

// Parse decodes and validates a YAML data set
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks references and enumerations
func (ds *Dataset) Validate() error {
	var errs []error

	owners := make(map[string]bool, len(ds.Owners))
	for _, o := range ds.Owners {
		if o.Email == "" || o.Name == "" {
			errs = append(errs, fmt.Errorf("owner %q: email and name are required", o.Email))
		}
		if owners[o.Email] {
			errs = append(errs, fmt.Errorf("owner %q: duplicate email", o.Email))
		}
		owners[o.Email] = true
	}

	for _, c := range ds.Clubs {
		if c.Name == "" {
			errs = append(errs, errors.New("club: name is required"))
		}
		if !owners[c.Owner] {
			errs = append(errs, fmt.Errorf("club %q: unknown owner %q", c.Name, c.Owner))
		}
		if !model.JoinType(c.JoinType).Valid() {
			errs = append(errs, fmt.Errorf("club %q: invalid join_type %q", c.Name, c.JoinType))
		}
		for _, e := range c.Events {
			req := model.CreateEventRequest{Title: e.Title, StartTime: e.StartTime, EndTime: e.EndTime}
			for _, fe := range req.Validate() {
				errs = append(errs, fmt.Errorf("club %q event %q: %s", c.Name, e.Title, fe.Message))
			}
		}
	}

	return errors.Join(errs...)
}

// EventCount returns the number of events across all clubs
func (ds *Dataset) EventCount() int {
	n := 0
	for _, c := range ds.Clubs {
		n += len(c.Events)
	}
	return n
}
