package domain

// Experience policy.
const (
	ExpertThreshold = 50
	DiscoveryBonus  = 5

	// ModerationRewardUnit is awarded for an approved edit; approved new
	// places earn NewPlaceRewardMultiplier units.
	ModerationRewardUnit     = 10
	NewPlaceRewardMultiplier = 3
)

// AddExperience is the only mutator of exp and expert. Non-positive amounts
// are ignored. It reports whether this call promoted the user to expert.
func (u *User) AddExperience(amount int) bool {
	if amount <= 0 {
		return false
	}
	u.exp += amount
	if !u.expert && u.exp >= ExpertThreshold {
		u.expert = true
		return true
	}
	return false
}
