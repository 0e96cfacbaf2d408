// Package profile implements the creator profile: the info row written by
// the onboarding wizard and the tiers, FAQs, team members, about text and
// images attached to it. Every write requires a signed-in user and only
// touches rows owned by that user.
package profile
