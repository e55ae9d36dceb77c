// Package seed fills an empty portfolio database with initial content.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/aTrapDeer/portfolio/internal/models"
	"github.com/aTrapDeer/portfolio/internal/schema"
	"github.com/aTrapDeer/portfolio/internal/store"
)

//go:embed default.yaml
var defaultData []byte

// Default returns the built-in seed document.
func Default() []byte {
	return defaultData
}

// document is the YAML layout. Entries stay loosely typed until each one is
// checked against its schema.
type document struct {
	Users      []map[string]any `yaml:"users"`
	Skills     []map[string]any `yaml:"skills"`
	Projects   []map[string]any `yaml:"projects"`
	Milestones []map[string]any `yaml:"milestones"`
}

// Report counts the records created by a run.
type Report struct {
	Users      int
	Skills     int
	Projects   int
	Milestones int
}

// Options tune a seeding run.
type Options struct {
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	// Secrets receives generated passwords, outside the structured log.
	// Defaults to os.Stderr.
	Secrets io.Writer
}

// LoadFile reads a seed document from path.
func LoadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return data, nil
}

// Run validates every entry of data and inserts them into st. Skills,
// projects and milestones are only inserted when their table is empty.
// Users whose username already exists are skipped. A user without a
// password gets a random one, written once to opts.Secrets when the user
// is created.
func Run(ctx context.Context, st store.Store, data []byte, opts Options) (Report, error) {
	var rep Report
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return rep, fmt.Errorf("parse seed: %w", err)
	}

	generated := fillPasswords(doc.Users)
	users, err := decodeAll[models.NewUser](schema.KindUser, doc.Users)
	if err != nil {
		return rep, err
	}
	skills, err := decodeAll[models.NewSkill](schema.KindSkill, doc.Skills)
	if err != nil {
		return rep, err
	}
	projects, err := decodeAll[models.NewProject](schema.KindProject, doc.Projects)
	if err != nil {
		return rep, err
	}
	milestones, err := decodeAll[models.NewMilestone](schema.KindMilestone, doc.Milestones)
	if err != nil {
		return rep, err
	}

	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	secrets := opts.Secrets
	if secrets == nil {
		secrets = os.Stderr
	}
	for _, u := range users {
		_, exists, err := st.GetUserByUsername(ctx, u.Username)
		if err != nil {
			return rep, err
		}
		if exists {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return rep, fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		plain := u.Password
		u.Password = string(hash)
		if _, err := st.CreateUser(ctx, u); err != nil {
			return rep, err
		}
		rep.Users++
		if generated[u.Username] {
			slog.Warn("seed: generated password for user", "username", u.Username)
			fmt.Fprintf(secrets, "generated password for %s: %s\n", u.Username, plain)
		}
	}

	if rep.Skills, err = fillEmpty(ctx, st.ListSkills, st.CreateSkill, skills); err != nil {
		return rep, err
	}
	if rep.Projects, err = fillEmpty(ctx, st.ListProjects, st.CreateProject, projects); err != nil {
		return rep, err
	}
	if rep.Milestones, err = fillEmpty(ctx, st.ListMilestones, st.CreateMilestone, milestones); err != nil {
		return rep, err
	}
	return rep, nil
}

// fillPasswords gives every user entry without a password a random one and
// returns the usernames it did so for.
func fillPasswords(entries []map[string]any) map[string]bool {
	generated := make(map[string]bool)
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if pw, _ := entry["password"].(string); pw == "" {
			entry["password"] = uuid.NewString()
			if name, ok := entry["username"].(string); ok {
				generated[name] = true
			}
		}
	}
	return generated
}

func decodeAll[T any](kind schema.Kind, entries []map[string]any) ([]T, error) {
	out := make([]T, 0, len(entries))
	for i, entry := range entries {
		raw, err := json.Marshal(entry)
		if err != nil {
			return nil, fmt.Errorf("seed %s #%d: %w", kind, i, err)
		}
		v, err := schema.Decode[T](kind, raw)
		if err != nil {
			return nil, fmt.Errorf("seed %s #%d: %w", kind, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func fillEmpty[In, Out any](ctx context.Context, list func(context.Context) ([]Out, error), create func(context.Context, In) (Out, error), entries []In) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	existing, err := list(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, e := range entries {
		if _, err := create(ctx, e); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}
