package services

import (
	"context"
	"strconv"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

// In-memory repository fakes. Transaction-scoped methods accept a nil pgx.Tx
// because the fake tx manager below never opens a real transaction.

type fakeUserRepo struct {
	users  map[uint64]*entities.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*entities.User), nextID: 1}
}

func (r *fakeUserRepo) add(u entities.User) *entities.User {
	if u.ID == 0 {
		u.ID = r.nextID
	}
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	u.CreatedAt = time.Now()
	r.users[u.ID] = &u
	return r.users[u.ID]
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint64) (*entities.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByAuthID(_ context.Context, authID string) (*entities.User, error) {
	for _, u := range r.users {
		if u.AuthID == authID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]entities.User, error) {
	var out []entities.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string) ([]entities.User, error) {
	var out []entities.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListAssignable(_ context.Context) ([]entities.User, error) {
	var out []entities.User
	for _, u := range r.users {
		if u.Role != constants.RoleUser {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListPromotable(_ context.Context) ([]entities.User, error) {
	var out []entities.User
	for _, u := range r.users {
		if u.Role == constants.RoleUser || (u.Role == constants.RoleTechnician && !u.TeamID.Valid) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uint64, role string) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) UpdateTeam(_ context.Context, id uint64, teamID uint64) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.TeamID = null.Uint64From(teamID)
	return nil
}

func (r *fakeUserRepo) AcquireBootstrapLockTx(context.Context, pgx.Tx) error { return nil }

func (r *fakeUserRepo) CountUsersTx(context.Context, pgx.Tx) (uint64, error) {
	return uint64(len(r.users)), nil
}

func (r *fakeUserRepo) InsertUserTx(_ context.Context, _ pgx.Tx, authID, email, name, role string) (*entities.User, error) {
	u := r.add(entities.User{AuthID: authID, Email: email, Name: name, Role: role})
	copied := *u
	return &copied, nil
}

type fakeCredentialRepo struct {
	byEmail map[string]repositories.Credential
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{byEmail: make(map[string]repositories.Credential)}
}

func (r *fakeCredentialRepo) FindByEmail(_ context.Context, email string) (*repositories.Credential, error) {
	if cred, ok := r.byEmail[email]; ok {
		return &cred, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeCredentialRepo) InsertTx(_ context.Context, _ pgx.Tx, cred repositories.Credential) error {
	r.byEmail[cred.Email] = cred
	return nil
}

type fakeCacheRepo struct {
	values map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (r *fakeCacheRepo) Get(_ context.Context, key string) (string, error) {
	if v, ok := r.values[key]; ok {
		return v, nil
	}
	return "", apperrors.ErrNotFound
}

func (r *fakeCacheRepo) Set(_ context.Context, key, value string, _ time.Duration) error {
	r.values[key] = value
	return nil
}

func (r *fakeCacheRepo) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

func (r *fakeCacheRepo) Increment(_ context.Context, key string) (int64, error) {
	n, _ := strconv.ParseInt(r.values[key], 10, 64)
	n++
	r.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (r *fakeCacheRepo) Expire(context.Context, string, time.Duration) error { return nil }

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeTeamRepo struct {
	teams  map[uint64]*entities.Team
	nextID uint64
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[uint64]*entities.Team), nextID: 1}
}

func (r *fakeTeamRepo) add(name string) *entities.Team {
	t := &entities.Team{ID: r.nextID, Name: name, CreatedAt: time.Now()}
	r.teams[t.ID] = t
	r.nextID++
	return t
}

func (r *fakeTeamRepo) Create(_ context.Context, name string, description null.String) (*entities.Team, error) {
	t := r.add(name)
	t.Description = description
	copied := *t
	return &copied, nil
}

func (r *fakeTeamRepo) FindByID(_ context.Context, id uint64) (*entities.Team, error) {
	if t, ok := r.teams[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeTeamRepo) ListAll(_ context.Context) ([]entities.Team, error) {
	var out []entities.Team
	for _, t := range r.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, id uint64, name string, description null.String) (*entities.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	t.Name = name
	t.Description = description
	copied := *t
	return &copied, nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.teams[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.teams, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[uint64]*entities.EquipmentCategory
	nextID     uint64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uint64]*entities.EquipmentCategory), nextID: 1}
}

func (r *fakeCategoryRepo) add(name, company string) *entities.EquipmentCategory {
	c := &entities.EquipmentCategory{ID: r.nextID, Name: name, Company: company, CreatedAt: time.Now()}
	r.categories[c.ID] = c
	r.nextID++
	return c
}

func (r *fakeCategoryRepo) Create(_ context.Context, name, company string, responsibleUserID null.Uint64) (*entities.EquipmentCategory, error) {
	c := r.add(name, company)
	c.ResponsibleUserID = responsibleUserID
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uint64) (*entities.EquipmentCategory, error) {
	if c, ok := r.categories[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeCategoryRepo) ListAll(_ context.Context) ([]entities.EquipmentCategory, error) {
	var out []entities.EquipmentCategory
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, id uint64, name, company string, responsibleUserID null.Uint64) (*entities.EquipmentCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	c.Name = name
	c.Company = company
	c.ResponsibleUserID = responsibleUserID
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.categories[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type fakeEquipmentRepo struct {
	items  map[uint64]*entities.Equipment
	nextID uint64
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: make(map[uint64]*entities.Equipment), nextID: 1}
}

func (r *fakeEquipmentRepo) add(e entities.Equipment) *entities.Equipment {
	if e.ID == 0 {
		e.ID = r.nextID
	}
	if e.ID >= r.nextID {
		r.nextID = e.ID + 1
	}
	r.items[e.ID] = &e
	return r.items[e.ID]
}

func (r *fakeEquipmentRepo) Create(_ context.Context, eq *entities.Equipment) (*entities.Equipment, error) {
	stored := r.add(*eq)
	copied := *stored
	return &copied, nil
}

func (r *fakeEquipmentRepo) FindByID(_ context.Context, id uint64) (*entities.Equipment, error) {
	if e, ok := r.items[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepo) ListAll(_ context.Context, _ repositories.EquipmentFilter) ([]entities.Equipment, error) {
	var out []entities.Equipment
	for _, e := range r.items {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEquipmentRepo) Update(_ context.Context, eq *entities.Equipment) (*entities.Equipment, error) {
	if _, ok := r.items[eq.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *eq
	r.items[eq.ID] = &copied
	result := copied
	return &result, nil
}

func (r *fakeEquipmentRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeRequestRepo struct {
	requests map[uint64]*entities.MaintenanceRequest
	nextID   uint64

	equipment *fakeEquipmentRepo
}

func newFakeRequestRepo(equipment *fakeEquipmentRepo) *fakeRequestRepo {
	return &fakeRequestRepo{
		requests:  make(map[uint64]*entities.MaintenanceRequest),
		nextID:    1,
		equipment: equipment,
	}
}

func (r *fakeRequestRepo) Create(_ context.Context, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	stored := *req
	stored.ID = r.nextID
	r.nextID++
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.requests[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	if req, ok := r.requests[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeRequestRepo) ListByCreator(_ context.Context, userID uint64) ([]entities.MaintenanceRequest, error) {
	var out []entities.MaintenanceRequest
	for _, req := range r.requests {
		if req.CreatedBy == userID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListAll(_ context.Context, filter repositories.RequestFilter) ([]entities.MaintenanceRequest, error) {
	var out []entities.MaintenanceRequest
	for _, req := range r.requests {
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if filter.TeamID != nil && req.TeamID != *filter.TeamID {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (r *fakeRequestRepo) ListScheduled(_ context.Context, from, to time.Time, teamID *uint64) ([]entities.MaintenanceRequest, error) {
	var out []entities.MaintenanceRequest
	for _, req := range r.requests {
		if req.Type != constants.TypePreventive || !req.ScheduledDate.Valid {
			continue
		}
		d := req.ScheduledDate.Time
		if d.Before(from) || d.After(to) {
			continue
		}
		if teamID != nil && req.TeamID != *teamID {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (r *fakeRequestRepo) UpdateStatus(_ context.Context, id uint64, status string) error {
	req, ok := r.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRequestRepo) Assign(_ context.Context, id uint64, technicianID uint64) error {
	req, ok := r.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.AssignedTo = null.Uint64From(technicianID)
	req.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRequestRepo) Update(_ context.Context, updated *entities.MaintenanceRequest) error {
	req, ok := r.requests[updated.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.Subject = updated.Subject
	req.Priority = updated.Priority
	req.EquipmentID = updated.EquipmentID
	req.TeamID = updated.TeamID
	req.ScheduledDate = updated.ScheduledDate
	req.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRequestRepo) Scrap(_ context.Context, id, equipmentID uint64) error {
	req, ok := r.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.Status = constants.StatusScrap
	req.UpdatedAt = time.Now()
	if r.equipment != nil {
		if e, ok := r.equipment.items[equipmentID]; ok {
			e.IsScrapped = true
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	notifications []entities.Notification
	nextID        uint64
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *entities.Notification) (*entities.Notification, error) {
	stored := *n
	stored.ID = r.nextID
	r.nextID++
	stored.CreatedAt = time.Now()
	r.notifications = append(r.notifications, stored)
	copied := stored
	return &copied, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID uint64) ([]entities.Notification, error) {
	var out []entities.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID uint64) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID uint64) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uint64) error {
	for i := range r.notifications {
		if r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
		}
	}
	return nil
}
