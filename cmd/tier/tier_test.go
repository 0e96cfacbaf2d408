package tier

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/testutil/cmdtest"
)

func run(t *testing.T, env *cmdtest.Env, args ...string) (string, error) {
	t.Helper()
	cmd := New(env.Ctx)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seed(t *testing.T, env *cmdtest.Env, in profile.TierInput) *profile.Tier {
	t.Helper()
	tier, err := env.Services(t).Tiers.Create(context.Background(), in)
	require.NoError(t, err)
	return tier
}

func TestCreate_FromFlags(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	env.Factory.NonInteractive = true

	_, err := run(t, env, "create", "--name", "Gold", "--reward", "Credits", "--amount", "25")
	require.NoError(t, err)

	rows := env.Store.Rows(profile.TableTiers)
	require.Len(t, rows, 1)
	assert.Equal(t, "Gold", rows[0]["name"])
	assert.Equal(t, "user-1", rows[0]["user_id"])
	assert.EqualValues(t, 25, rows[0]["amount"])
	assert.Equal(t, []string{"Tier Gold created"}, env.Notifier.Successes)
}

func TestCreate_EmptyAmountIsStoredAsNull(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	env.Factory.NonInteractive = true

	_, err := run(t, env, "create", "--name", "Any")
	require.NoError(t, err)

	rows := env.Store.Rows(profile.TableTiers)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0]["amount"])
}

func TestCreate_NonInteractiveWithoutNameFails(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	env.Factory.NonInteractive = true

	_, err := run(t, env, "create", "--reward", "Credits")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create tier")
	assert.Empty(t, env.Store.Rows(profile.TableTiers))
}

func TestCreate_RejectsBadAmount(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	env.Factory.NonInteractive = true

	_, err := run(t, env, "create", "--name", "Gold", "--amount", "lots")
	require.Error(t, err)
	assert.Empty(t, env.Store.Rows(profile.TableTiers))
}

func TestList_Table(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	seed(t, env, profile.TierInput{Name: "Gold", RewardDescription: "Credits", Amount: "25"})

	out, err := run(t, env, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Gold")
	assert.Contains(t, out, "25")
	assert.Contains(t, out, "Credits")
}

func TestList_Empty(t *testing.T) {
	env := cmdtest.New(t, "user-1")

	out, err := run(t, env, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tiers yet")
}

func TestList_JSONForAnotherUser(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	seed(t, env, profile.TierInput{Name: "Mine"})

	other := cmdtest.New(t, "user-2")
	other.Factory.Store = env.Store

	out, err := run(t, other, "list", "--user", "user-1", "-o", "json")
	require.NoError(t, err)

	var tiers []profile.Tier
	require.NoError(t, json.Unmarshal([]byte(out), &tiers))
	require.Len(t, tiers, 1)
	assert.Equal(t, "Mine", tiers[0].Name)
}

func TestList_RejectsUnknownFormat(t *testing.T) {
	env := cmdtest.New(t, "user-1")

	_, err := run(t, env, "list", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestEdit_OverlaysChangedFlags(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	tier := seed(t, env, profile.TierInput{Name: "Gold", RewardDescription: "Credits", Amount: "25"})

	_, err := run(t, env, "edit", tier.ID[:6], "--amount", "30")
	require.NoError(t, err)

	rows := env.Store.Rows(profile.TableTiers)
	require.Len(t, rows, 1)
	assert.Equal(t, "Gold", rows[0]["name"])
	assert.Equal(t, "Credits", rows[0]["reward_description"])
	assert.EqualValues(t, 30, rows[0]["amount"])
	assert.NotNil(t, rows[0]["updated_at"])
	assert.Equal(t, []string{"Tier Gold updated"}, env.Notifier.Successes)
}

func TestEdit_UnknownID(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	seed(t, env, profile.TierInput{Name: "Gold"})

	_, err := run(t, env, "edit", "zzz", "--name", "Silver")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entry with id")
}

func TestEdit_CannotTouchOtherUsersTier(t *testing.T) {
	owner := cmdtest.New(t, "user-1")
	tier := seed(t, owner, profile.TierInput{Name: "Gold"})

	intruder := cmdtest.New(t, "user-2")
	intruder.Factory.Store = owner.Store

	_, err := run(t, intruder, "edit", tier.ID, "--name", "Stolen")
	require.Error(t, err)
	assert.Equal(t, "Gold", owner.Store.Rows(profile.TableTiers)[0]["name"])
}

func TestDelete_WithConfirmationSkipped(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	tier := seed(t, env, profile.TierInput{Name: "Gold"})
	env.Factory.SkipConfirmation = true

	_, err := run(t, env, "delete", tier.ID)
	require.NoError(t, err)
	assert.Empty(t, env.Store.Rows(profile.TableTiers))
	assert.Equal(t, []string{"Tier Gold deleted"}, env.Notifier.Successes)
}

func TestDelete_NonInteractiveRequiresYes(t *testing.T) {
	env := cmdtest.New(t, "user-1")
	tier := seed(t, env, profile.TierInput{Name: "Gold"})
	env.Factory.NonInteractive = true

	_, err := run(t, env, "delete", tier.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Len(t, env.Store.Rows(profile.TableTiers), 1)
}
