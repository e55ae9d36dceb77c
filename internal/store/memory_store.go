package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aTrapDeer/portfolio/internal/models"
)

// MemoryStore keeps records in-process. It backs tests and runs without a
// database (DATABASE_URL=memory).
type MemoryStore struct {
	mu         sync.RWMutex
	seq        map[string]uint
	users      map[uint]models.User
	contacts   map[uint]models.ContactMessage
	skills     map[uint]models.Skill
	projects   map[uint]models.Project
	milestones map[uint]models.Milestone
	now        func() time.Time
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seq:        make(map[string]uint),
		users:      make(map[uint]models.User),
		contacts:   make(map[uint]models.ContactMessage),
		skills:     make(map[uint]models.Skill),
		projects:   make(map[uint]models.Project),
		milestones: make(map[uint]models.Milestone),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) Close() error { return nil }

// next returns the next id for table. Callers hold the write lock.
func (m *MemoryStore) next(table string) uint {
	m.seq[table]++
	return m.seq[table]
}

func sortedBy[T any](recs map[uint]T, keep func(T) bool, cmpFn func(a, b T) int) []T {
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		if keep == nil || keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, cmpFn)
	return out
}

func lookup[T any](mu *sync.RWMutex, recs map[uint]T, id uint) (T, bool, error) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := recs[id]
	return r, ok, nil
}

// users

func (m *MemoryStore) GetUser(_ context.Context, id uint) (models.User, bool, error) {
	return lookup(&m.mu, m.users, id)
}

func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (models.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (m *MemoryStore) CreateUser(_ context.Context, in models.NewUser) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == in.Username {
			return models.User{}, &Error{Op: "create user", Err: ErrDuplicate}
		}
	}
	u := in.Record()
	u.ID = m.next("users")
	m.users[u.ID] = u
	return u, nil
}

// contact messages

func (m *MemoryStore) ListContactMessages(_ context.Context) ([]models.ContactMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedBy(m.contacts, nil, func(a, b models.ContactMessage) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}), nil
}

func (m *MemoryStore) GetContactMessage(_ context.Context, id uint) (models.ContactMessage, bool, error) {
	return lookup(&m.mu, m.contacts, id)
}

func (m *MemoryStore) CreateContactMessage(_ context.Context, in models.NewContactMessage) (models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := in.Record()
	msg.ID = m.next("contact_messages")
	msg.CreatedAt = m.now()
	m.contacts[msg.ID] = msg
	return msg, nil
}

func (m *MemoryStore) MarkContactMessageRead(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg, ok := m.contacts[id]; ok {
		msg.Read = true
		m.contacts[id] = msg
	}
	return nil
}

// skills

func bySkillOrder(a, b models.Skill) int {
	return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.ID, b.ID))
}

func (m *MemoryStore) ListSkills(_ context.Context) ([]models.Skill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedBy(m.skills, nil, bySkillOrder), nil
}

func (m *MemoryStore) GetSkill(_ context.Context, id uint) (models.Skill, bool, error) {
	return lookup(&m.mu, m.skills, id)
}

func (m *MemoryStore) CreateSkill(_ context.Context, in models.NewSkill) (models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := in.Record()
	s.ID = m.next("skills")
	m.skills[s.ID] = s
	return s, nil
}

func (m *MemoryStore) UpdateSkill(_ context.Context, id uint, patch models.SkillPatch) (models.Skill, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.skills[id]
	if !ok {
		return models.Skill{}, false, nil
	}
	patch.Apply(&s)
	m.skills[id] = s
	return s, true, nil
}

func (m *MemoryStore) DeleteSkill(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.skills, id)
	return nil
}

// projects

func byProjectOrder(a, b models.Project) int {
	return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.ID, b.ID))
}

func (m *MemoryStore) ListProjects(_ context.Context) ([]models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneProjects(sortedBy(m.projects, nil, byProjectOrder)), nil
}

func (m *MemoryStore) ListProjectsByCategory(_ context.Context, category string) ([]models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keep := func(p models.Project) bool { return p.Category == category }
	return cloneProjects(sortedBy(m.projects, keep, byProjectOrder)), nil
}

// cloneProjects detaches listed projects from the stored ones.
func cloneProjects(ps []models.Project) []models.Project {
	for i := range ps {
		ps[i] = ps[i].Clone()
	}
	return ps
}

func (m *MemoryStore) GetProject(_ context.Context, id uint) (models.Project, bool, error) {
	p, ok, err := lookup(&m.mu, m.projects, id)
	return p.Clone(), ok, err
}

func (m *MemoryStore) CreateProject(_ context.Context, in models.NewProject) (models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := in.Record()
	p.ID = m.next("projects")
	m.projects[p.ID] = p
	return p.Clone(), nil
}

func (m *MemoryStore) UpdateProject(_ context.Context, id uint, patch models.ProjectPatch) (models.Project, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return models.Project{}, false, nil
	}
	patch.Apply(&p)
	m.projects[id] = p
	return p.Clone(), true, nil
}

func (m *MemoryStore) DeleteProject(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.projects, id)
	return nil
}

// milestones

func byMilestoneOrder(a, b models.Milestone) int {
	return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.ID, b.ID))
}

func (m *MemoryStore) ListMilestones(_ context.Context) ([]models.Milestone, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedBy(m.milestones, nil, byMilestoneOrder), nil
}

func (m *MemoryStore) GetMilestone(_ context.Context, id uint) (models.Milestone, bool, error) {
	return lookup(&m.mu, m.milestones, id)
}

func (m *MemoryStore) CreateMilestone(_ context.Context, in models.NewMilestone) (models.Milestone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms := in.Record()
	ms.ID = m.next("milestones")
	m.milestones[ms.ID] = ms
	return ms, nil
}

func (m *MemoryStore) UpdateMilestone(_ context.Context, id uint, patch models.MilestonePatch) (models.Milestone, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms, ok := m.milestones[id]
	if !ok {
		return models.Milestone{}, false, nil
	}
	patch.Apply(&ms)
	m.milestones[id] = ms
	return ms, true, nil
}

func (m *MemoryStore) DeleteMilestone(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.milestones, id)
	return nil
}
