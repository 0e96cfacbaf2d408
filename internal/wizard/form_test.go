package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormState_SharedAcrossSteps(t *testing.T) {
	form := NewFormState()
	c, err := New(DefaultSteps(), form)
	assert.NoError(t, err)

	// step one writes, a later step view reads from the same container
	c.Form().SetText(FieldBrand, "Acme")
	stepTwoView := c.Form()
	assert.Same(t, form, stepTwoView)
	assert.Equal(t, "Acme", stepTwoView.GetText(FieldBrand))
}

func TestFormState_GetUnsetIsEmpty(t *testing.T) {
	form := NewFormState()

	v := form.Get("never-set")
	assert.Equal(t, KindEmpty, v.Kind())
	assert.True(t, v.IsEmpty())
	assert.Equal(t, "", form.GetText("never-set"))
	assert.Empty(t, form.GetList("never-set"))
	assert.Empty(t, form.GetLinks("never-set"))
	assert.False(t, form.GetFlag("never-set"))
}

func TestFormState_SetOverwritesWithoutValidation(t *testing.T) {
	form := NewFormState()
	form.SetText(FieldBrand, "   ")
	form.SetText(FieldBrand, "Acme Co")
	assert.Equal(t, "Acme Co", form.GetText(FieldBrand))

	form.SetLinks(FieldSocials, []SocialLink{{Platform: "", URL: "nope"}})
	assert.Len(t, form.GetLinks(FieldSocials), 1)
}

func TestFormState_ValuesAreIsolatedFromCallers(t *testing.T) {
	form := NewFormState()
	tags := []string{"a", "b"}
	form.SetList(FieldTags, tags)
	tags[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, form.GetList(FieldTags))

	got := form.GetList(FieldTags)
	got[1] = "mutated"
	assert.Equal(t, []string{"a", "b"}, form.GetList(FieldTags))
}

func TestFormState_Reset(t *testing.T) {
	form := NewFormState()
	form.SetText(FieldBrand, "Acme")
	form.SetFlag(FieldAcceptTerms, true)
	assert.Equal(t, []string{FieldAcceptTerms, FieldBrand}, form.Fields())

	form.Reset()
	assert.Equal(t, 0, form.Len())
	assert.Equal(t, "", form.GetText(FieldBrand))
}
