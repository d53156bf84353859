package services

import (
	"log"

	"github.com/DevSujal/level-quest-backend/models"

	"gorm.io/gorm"
)

// Fixed implicit payouts fired on completion.
const (
	TaskExperienceBonus = 10 // every completed task
	ChallengeSkillBonus = 10 // completed challenge with a skill set
)

// EffectKind tags a resolved reward delta.
type EffectKind int

const (
	EffectCoins EffectKind = iota
	EffectExperience
	EffectSkill
)

// Effect is one net numeric delta against a user. ResolveRewards produces
// them; applyEffects applies them inside the caller's transaction.
type Effect struct {
	Kind   EffectKind
	Skill  string
	Amount int
}

// RewardInput is the resolver's view of a payout descriptor. Reward and
// DailyReward both reduce to it so one resolver serves every completable.
type RewardInput struct {
	Type   models.RewardType
	Amount int
	Skill  string
}

func rewardInputs(rewards []models.Reward) []RewardInput {
	inputs := make([]RewardInput, len(rewards))
	for i, r := range rewards {
		inputs[i] = RewardInput{Type: r.Type, Amount: r.Amount, Skill: r.Skill}
	}
	return inputs
}

func dailyRewardInputs(rewards []models.DailyReward) []RewardInput {
	inputs := make([]RewardInput, len(rewards))
	for i, r := range rewards {
		inputs[i] = RewardInput{Type: r.Type, Amount: r.Amount}
	}
	return inputs
}

// ResolveRewards turns reward descriptors into effects. Pure: no store
// access, no mutation. SKILL rewards without a skill name and ITEM rewards
// are dropped with a warning; item payouts are not wired to inventory
// grants until product intent is settled.
func ResolveRewards(rewards []RewardInput) []Effect {
	effects := make([]Effect, 0, len(rewards))
	for _, r := range rewards {
		switch r.Type {
		case models.RewardTypeCoins:
			effects = append(effects, Effect{Kind: EffectCoins, Amount: r.Amount})
		case models.RewardTypeExperience:
			effects = append(effects, Effect{Kind: EffectExperience, Amount: r.Amount})
		case models.RewardTypeSkill:
			if r.Skill == "" {
				log.Printf("⚠️ skipping SKILL reward with no skill name")
				continue
			}
			effects = append(effects, Effect{Kind: EffectSkill, Skill: r.Skill, Amount: r.Amount})
		case models.RewardTypeItem:
			log.Printf("⚠️ skipping unsupported ITEM reward")
		default:
			log.Printf("⚠️ skipping unknown reward type %q", r.Type)
		}
	}
	return effects
}

// applyEffects mutates the user's balances and skill stats. Must run inside
// a transaction so a completion event applies all of its deltas or none.
// Every write is an atomic increment or upsert, never read-modify-write.
func applyEffects(tx *gorm.DB, userID string, effects []Effect) error {
	for _, e := range effects {
		var err error
		switch e.Kind {
		case EffectCoins:
			err = incrementUserField(tx, userID, "coins", e.Amount)
		case EffectExperience:
			err = incrementUserField(tx, userID, "exp", e.Amount)
		case EffectSkill:
			err = upsertSkillStat(tx, userID, e.Skill, e.Amount)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func incrementUserField(tx *gorm.DB, userID, column string, delta int) error {
	res := tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
