package service

import (
	"testing"

	"tetconnect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFamilyEnrollsOwner(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	ok, err := env.families.IsMember(env.ctx, env.family.ID, env.owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	members, err := env.families.Members(env.ctx, env.family.ID, env.member.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	roles := map[string]string{}
	for _, m := range members {
		roles[m.Username] = m.Role
	}
	assert.Equal(t, map[string]string{"an": domain.MemberOwner, "binh": domain.MemberMember}, roles)
}

func TestCreateFamilyValidation(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	_, err := env.families.Create(env.ctx, env.owner.ID, "   ")
	assert.Equal(t, KindBadRequest, KindOf(err))
}

func TestAddMemberRules(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	_, err := env.families.AddMember(env.ctx, env.family.ID, env.member.ID, "cuong")
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = env.families.AddMember(env.ctx, env.family.ID, env.owner.ID, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.families.AddMember(env.ctx, 999, env.owner.ID, "cuong")
	assert.ErrorIs(t, err, ErrFamilyNotFound)

	_, err = env.families.AddMember(env.ctx, 0, env.owner.ID, "cuong")
	assert.ErrorIs(t, err, ErrMissingFamily)

	again, err := env.families.AddMember(env.ctx, env.family.ID, env.owner.ID, " BINH ")
	require.NoError(t, err)
	assert.Equal(t, env.member.ID, again.UserID)
	assert.Equal(t, domain.MemberMember, again.Role)

	var count int64
	require.NoError(t, env.db.Model(&domain.FamilyMember{}).Where("family_id = ?", env.family.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestMembersHiddenFromOutsiders(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	_, err := env.families.Members(env.ctx, env.family.ID, env.outsider.ID)
	assert.ErrorIs(t, err, ErrNotMember)
}
