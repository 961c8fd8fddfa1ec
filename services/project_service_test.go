package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub-backend/models"
	"taskhub-backend/services"
)

func TestProjectCreate_DefaultsToActive(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "boss@example.com")

	p := f.project(t, "Apollo", a.ID)
	assert.Equal(t, models.ProjectStatusActive, p.Status)
	assert.Equal(t, a.ID, p.CreatedBy)

	done := models.ProjectStatusCompleted
	p2, err := f.projects.Create(f.ctx, a.ID, services.ProjectInput{Name: "Gemini", Status: &done})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusCompleted, p2.Status)
}

func TestProjectFindAll_ScopedByRole(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "boss@example.com")
	b := f.admin(t, "other@example.com")
	u := f.user(t, "Uma", "User", "uma@example.com", a.ID)

	apollo := f.project(t, "Apollo", a.ID)
	f.project(t, "Gemini", a.ID)
	mercury := f.project(t, "Mercury", b.ID)

	_, err := f.projects.AssignUser(f.ctx, apollo.ID, u.ID, a.ID)
	require.NoError(t, err)
	_, err = f.projects.AssignUser(f.ctx, mercury.ID, u.ID, b.ID)
	require.NoError(t, err)

	own, err := f.projects.FindAll(f.ctx, a.ID, services.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "Gemini", own[0].Name, "newest first")
	require.NotNil(t, own[1].Admin)
	assert.Equal(t, "boss@example.com", own[1].Admin.Email)
	require.Len(t, own[1].Users, 1)
	assert.Equal(t, "Uma", own[1].Users[0].User.FirstName)

	memberOf, err := f.projects.FindAll(f.ctx, u.ID, services.RoleUser)
	require.NoError(t, err)
	names := []string{}
	for _, p := range memberOf {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Apollo", "Mercury"}, names)
}

func TestProjectFindOne(t *testing.T) {
	f := newFixture(t)
	missing, err := f.projects.FindOne(f.ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProjectOwnership(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "boss@example.com")
	b := f.admin(t, "other@example.com")
	u := f.user(t, "Uma", "User", "uma@example.com", a.ID)
	p := f.project(t, "Apollo", a.ID)

	_, err := f.projects.Update(f.ctx, p.ID, b.ID, services.ProjectPatch{Name: strp("Hijacked")})
	assert.True(t, services.IsKind(err, services.KindForbidden))
	err = f.projects.Remove(f.ctx, p.ID, b.ID)
	assert.True(t, services.IsKind(err, services.KindForbidden))
	_, err = f.projects.AssignUser(f.ctx, p.ID, u.ID, b.ID)
	assert.True(t, services.IsKind(err, services.KindForbidden))

	_, err = f.projects.Update(f.ctx, 999, a.ID, services.ProjectPatch{Name: strp("Nope")})
	assert.True(t, services.IsKind(err, services.KindNotFound))

	inactive := models.ProjectStatusInactive
	updated, err := f.projects.Update(f.ctx, p.ID, a.ID, services.ProjectPatch{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusInactive, updated.Status)
	assert.Equal(t, "Apollo", updated.Name)

	require.NoError(t, f.projects.Remove(f.ctx, p.ID, a.ID))
	err = f.projects.Remove(f.ctx, p.ID, a.ID)
	assert.True(t, services.IsKind(err, services.KindNotFound))
}

func TestAssignUserTwice(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "boss@example.com")
	u := f.user(t, "Uma", "User", "uma@example.com", a.ID)
	p := f.project(t, "Apollo", a.ID)

	names, err := f.projects.AssignUser(f.ctx, p.ID, u.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Uma User"}, names)

	_, err = f.projects.AssignUser(f.ctx, p.ID, u.ID, a.ID)
	assert.True(t, services.IsKind(err, services.KindConflict), "got %v", err)

	_, err = f.projects.AssignUser(f.ctx, p.ID, 999, a.ID)
	assert.True(t, services.IsKind(err, services.KindNotFound))
}

func TestAssignUser_ListsMembersInAssignmentOrder(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "boss@example.com")
	zed := f.user(t, "Zed", "Last", "zed@example.com", a.ID)
	amy := f.user(t, "Amy", "First", "amy@example.com", a.ID)
	p := f.project(t, "Apollo", a.ID)

	_, err := f.projects.AssignUser(f.ctx, p.ID, zed.ID, a.ID)
	require.NoError(t, err)
	names, err := f.projects.AssignUser(f.ctx, p.ID, amy.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zed Last", "Amy First"}, names)
}

func TestRemoveUser_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "boss@example.com")
	u := f.user(t, "Uma", "User", "uma@example.com", a.ID)
	v := f.user(t, "Val", "User", "val@example.com", a.ID)
	p := f.project(t, "Apollo", a.ID)

	names, err := f.projects.RemoveUser(f.ctx, p.ID, u.ID, a.ID)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names)

	_, err = f.projects.AssignUser(f.ctx, p.ID, v.ID, a.ID)
	require.NoError(t, err)
	names, err = f.projects.RemoveUser(f.ctx, p.ID, u.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Val User"}, names)
}

func TestProjectDesignations(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "boss@example.com")
	p := f.project(t, "Apollo", a.ID)
	pilot := f.designation(t, "Pilot")
	engineer := f.designation(t, "Engineer")

	names, err := f.projects.AssignDesignation(f.ctx, p.ID, pilot.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pilot"}, names)
	names, err = f.projects.AssignDesignation(f.ctx, p.ID, engineer.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineer", "Pilot"}, names)

	_, err = f.projects.AssignDesignation(f.ctx, p.ID, pilot.ID, a.ID)
	assert.True(t, services.IsKind(err, services.KindConflict))
	_, err = f.projects.AssignDesignation(f.ctx, p.ID, 999, a.ID)
	assert.True(t, services.IsKind(err, services.KindNotFound))

	summaries, err := f.projects.GetProjectDesignations(f.ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, engineer.ID, summaries[0].ID)
	assert.False(t, summaries[0].AssignedAt.IsZero())

	names, err = f.projects.RemoveDesignation(f.ctx, p.ID, pilot.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineer"}, names)
	names, err = f.projects.RemoveDesignation(f.ctx, p.ID, pilot.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineer"}, names)

	_, err = f.projects.GetProjectDesignations(f.ctx, 999)
	assert.True(t, services.IsKind(err, services.KindNotFound))
}

func TestSetUserDesignation_RequiresAttachedDesignation(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "boss@example.com")
	u := f.user(t, "Uma", "User", "uma@example.com", a.ID)
	p := f.project(t, "Apollo", a.ID)
	d := f.designation(t, "Pilot")

	_, err := f.projects.AssignUser(f.ctx, p.ID, u.ID, a.ID)
	require.NoError(t, err)

	_, err = f.projects.SetUserDesignation(f.ctx, p.ID, u.ID, d.ID, a.ID)
	assert.True(t, services.IsKind(err, services.KindBadRequest), "got %v", err)

	_, err = f.projects.AssignDesignation(f.ctx, p.ID, d.ID, a.ID)
	require.NoError(t, err)
	res, err := f.projects.SetUserDesignation(f.ctx, p.ID, u.ID, d.ID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Designation)
	assert.Equal(t, "Pilot", *res.Designation)

	list, err := f.projects.GetProjectDesignations(f.ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pilot", list[0].Name)

	found, err := f.projects.FindOne(f.ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, found.Users, 1)
	require.NotNil(t, found.Users[0].Designation)
	assert.Equal(t, "Pilot", found.Users[0].Designation.Name)

	// Detaching the designation from the project clears it from members.
	_, err = f.projects.RemoveDesignation(f.ctx, p.ID, d.ID, a.ID)
	require.NoError(t, err)
	found, err = f.projects.FindOne(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Users[0].DesignationID)
}

func TestRemoveUserDesignation(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "boss@example.com")
	u := f.user(t, "Uma", "User", "uma@example.com", a.ID)
	p := f.project(t, "Apollo", a.ID)
	d := f.designation(t, "Pilot")

	_, err := f.projects.RemoveUserDesignation(f.ctx, p.ID, u.ID, a.ID)
	assert.True(t, services.IsKind(err, services.KindNotFound))

	_, err = f.projects.AssignUser(f.ctx, p.ID, u.ID, a.ID)
	require.NoError(t, err)
	_, err = f.projects.AssignDesignation(f.ctx, p.ID, d.ID, a.ID)
	require.NoError(t, err)
	_, err = f.projects.SetUserDesignation(f.ctx, p.ID, u.ID, d.ID, a.ID)
	require.NoError(t, err)

	res, err := f.projects.RemoveUserDesignation(f.ctx, p.ID, u.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, &services.MemberDesignation{ID: u.ID, FirstName: "Uma", LastName: "User"}, res)
}

// Admin creates a project, staffs it, designates the member and then
// removes them again.
func TestProjectMembershipScenario(t *testing.T) {
	f := newFixture(t)
	admin := f.admin(t, "a@example.com")
	user := f.user(t, "Ursula", "Lane", "u@example.com", admin.ID)
	designation := f.designation(t, "Navigator")

	project := f.project(t, "Voyager", admin.ID)
	assert.Equal(t, models.ProjectStatusActive, project.Status)

	members, err := f.projects.AssignUser(f.ctx, project.ID, user.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ursula Lane"}, members)

	attached, err := f.projects.AssignDesignation(f.ctx, project.ID, designation.ID, admin.ID)
	require.NoError(t, err)
	assert.Contains(t, attached, "Navigator")

	res, err := f.projects.SetUserDesignation(f.ctx, project.ID, user.ID, designation.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.ID)
	assert.Equal(t, "Ursula", res.FirstName)
	assert.Equal(t, "Lane", res.LastName)
	require.NotNil(t, res.Designation)
	assert.Equal(t, "Navigator", *res.Designation)

	members, err = f.projects.RemoveUser(f.ctx, project.ID, user.ID, admin.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	_, err = f.projects.SetUserDesignation(f.ctx, project.ID, user.ID, designation.ID, admin.ID)
	assert.True(t, services.IsKind(err, services.KindNotFound), "got %v", err)
}
