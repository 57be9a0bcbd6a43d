package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_MergeKeepsUntouchedFields(t *testing.T) {
	u := User{ID: 7, Email: "ann@example.org", FirstName: "Ann", LastName: "Lee", Role: RolePatient}

	got := u.Merge(UserPatch{FirstName: String("X")})

	assert.Equal(t, "X", got.FirstName)
	assert.Equal(t, "Lee", got.LastName)
	assert.Equal(t, RolePatient, got.Role)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "Ann", u.FirstName, "receiver must not be mutated")
}

func TestUser_DisplayName(t *testing.T) {
	var nilUser *User
	assert.Equal(t, "", nilUser.DisplayName())
	assert.Equal(t, "Dr Who", (&User{FullName: "Dr Who", FirstName: "D"}).DisplayName())
	assert.Equal(t, "D", (&User{FirstName: "D", Email: "d@x"}).DisplayName())
	assert.Equal(t, "d@x", (&User{Email: "d@x"}).DisplayName())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleDoctor.Valid())
	assert.True(t, RolePatient.Valid())
	assert.False(t, Role("nurse").Valid())
}

func TestList_DecodesPageAndBareArray(t *testing.T) {
	var page List[Doctor]
	require.NoError(t, json.Unmarshal([]byte(`{"count":12,"next":"http://x/?page=2","previous":null,"results":[{"id":1,"user_name":"Dr A","is_available":true}]}`), &page))
	assert.Equal(t, 12, page.Count)
	assert.True(t, page.HasNext())
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Dr A", page.Results[0].Name())

	var bare List[Doctor]
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1},{"id":2}]`), &bare))
	assert.Equal(t, 2, bare.Count)
	assert.False(t, bare.HasNext())
}
