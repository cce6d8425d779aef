package sim

import (
	"legend-of-kiro/internal/ai"
	"legend-of-kiro/internal/combat"
	"legend-of-kiro/internal/state"
	"legend-of-kiro/logging"
	combatlog "legend-of-kiro/logging/combat"
	"legend-of-kiro/logging/economy"
	statuslog "legend-of-kiro/logging/status_effects"
)

func (s *Session) updatePlayer() {
	p := s.player
	if expired := p.AdvanceTimers(); expired.Active() {
		statuslog.Expired(s.ctx, s.deps.Publisher, s.tick, playerRef, statuslog.Payload{Effect: string(expired)}, nil)
	}
	p.Steer(s.keys.input())
	if !p.Move(s.obstacles, s.enemies) {
		s.deps.Metrics.Add(embeddedMetricKey, 1)
	}
	p.AdvanceInvulnerability()
}

func (s *Session) updateEnemies() {
	cfg := ai.StepConfig{
		Crowd: s.enemies,
		RNG:   s.rng,
		Hooks: ai.Hooks{
			DamagePlayer: s.damagePlayer,
			Fired: func(e *state.Enemy, bolt state.Projectile) {
				combatlog.ProjectileFired(s.ctx, s.deps.Publisher, s.tick, enemyRef(e), projectilePayload(bolt), nil)
			},
		},
	}
	for _, e := range s.enemies {
		cfg.Player = s.player.Pos
		ai.Step(e, cfg)
		if s.phase != PhaseRunning {
			return
		}
	}
}

func (s *Session) updateCollectibles() {
	for _, c := range s.collectibles {
		if c.Collected || !c.Touches(s.player.Pos) {
			continue
		}
		c.Collect()
		s.applyPickup(c)
	}
}

func (s *Session) updateProjectiles() {
	s.player.Arrows = combat.AdvanceArrows(s.player.Arrows, s.enemies, combat.ArrowPhaseConfig{
		OnHit: func(arrow state.Projectile, e *state.Enemy, defeated bool) {
			s.enemyHit(e, arrow.Damage, string(state.ProjectileArrow), defeated)
		},
	})
}

func (s *Session) applyPickup(c *state.Collectible) {
	p := s.player
	s.deps.Metrics.Add(collectiblesMetricKey, 1)
	economy.ItemCollected(s.ctx, s.deps.Publisher, s.tick, playerRef,
		logging.EntityRef{ID: c.ID, Kind: logging.EntityKindItem},
		economy.ItemCollectedPayload{Item: string(c.Kind), X: c.Pos.X, Y: c.Pos.Y}, nil)

	effect := c.Kind.Effect()
	switch {
	case effect.Heal > 0:
		if p.Heal(effect.Heal) {
			s.notifyHealth()
		}
	case effect.Container:
		p.AddHeartContainer()
		s.notifyHealth()
	case effect.Score > 0:
		s.addScore(effect.Score, string(c.Kind))
	case effect.Weapon != "":
		p.EquipWeapon(effect.Weapon)
	case effect.Potion.Active():
		p.DrinkPotion(effect.Potion)
		statuslog.Applied(s.ctx, s.deps.Publisher, s.tick, playerRef, statuslog.Payload{
			Effect:        string(effect.Potion),
			DurationTicks: p.StatusTicks,
		}, nil)
	}
}

// Attack triggers the equipped weapon. It reports false when ignored: the
// session is not running or the weapon is cooling down.
func (s *Session) Attack() bool {
	if s.phase != PhaseRunning {
		return false
	}
	p := s.player
	if !p.Ready() {
		return false
	}
	p.BeginAttack()

	if p.Weapon.Ranged() {
		arrow := combat.SpawnArrow(p.Pos, p.Facing, p.Stats.Damage)
		p.Arrows = append(p.Arrows, arrow)
		combatlog.ProjectileFired(s.ctx, s.deps.Publisher, s.tick, playerRef, projectilePayload(arrow), nil)
		return true
	}

	var struck []logging.EntityRef
	result := combat.ResolveMeleeSweep(combat.MeleeSweepConfig{
		Origin: p.Pos,
		Facing: p.Facing,
		Range:  p.Stats.Range,
		Damage: p.Stats.Damage,
		OnHit: func(e *state.Enemy, defeated bool) {
			struck = append(struck, enemyRef(e))
			s.enemyHit(e, p.Stats.Damage, string(p.Weapon), defeated)
		},
	}, s.enemies)
	combatlog.MeleeSweep(s.ctx, s.deps.Publisher, s.tick, playerRef, struck, combatlog.MeleeSweepPayload{
		Weapon: string(p.Weapon),
		Damage: p.Stats.Damage,
		Range:  p.Stats.Range,
		Hits:   result.Hits,
	}, nil)
	return true
}

// enemyHit records damage already applied to e and settles a defeat.
func (s *Session) enemyHit(e *state.Enemy, amount float64, source string, defeated bool) {
	combatlog.Damage(s.ctx, s.deps.Publisher, s.tick, playerRef, enemyRef(e), combatlog.DamagePayload{
		Source:       source,
		Amount:       amount,
		TargetHealth: e.Health,
	}, nil)
	if !defeated {
		return
	}
	profile := e.Profile()
	s.deps.Metrics.Add(enemiesDefeatedKey, 1)
	combatlog.Defeat(s.ctx, s.deps.Publisher, s.tick, playerRef, enemyRef(e), combatlog.DefeatPayload{
		Source: source,
		Score:  profile.Score,
	}, nil)
	s.addScore(profile.Score, "defeat:"+string(e.Kind))
	if profile.Boss {
		s.finish(PhaseWon)
	}
}

func (s *Session) damagePlayer(e *state.Enemy, amount float64, source state.ProjectileKind) {
	if s.phase != PhaseRunning {
		return
	}
	if !s.player.TakeDamage(amount) {
		return
	}
	label := "contact"
	if source != "" {
		label = string(source)
	}
	combatlog.Damage(s.ctx, s.deps.Publisher, s.tick, enemyRef(e), playerRef, combatlog.DamagePayload{
		Source:       label,
		Amount:       amount,
		TargetHealth: s.player.Health,
	}, nil)
	s.notifyHealth()
	if s.player.Dead() {
		combatlog.Defeat(s.ctx, s.deps.Publisher, s.tick, enemyRef(e), playerRef, combatlog.DefeatPayload{Source: label}, nil)
		s.finish(PhaseLost)
	}
}

func (s *Session) addScore(delta int, reason string) {
	if delta == 0 {
		return
	}
	s.score += delta
	economy.ScoreChanged(s.ctx, s.deps.Publisher, s.tick, playerRef, economy.ScoreChangedPayload{
		Delta:  delta,
		Total:  s.score,
		Reason: reason,
	}, nil)
	s.notifyScore()
}

func projectilePayload(p state.Projectile) combatlog.ProjectileFiredPayload {
	return combatlog.ProjectileFiredPayload{
		Projectile: string(p.Kind),
		X:          p.Pos.X,
		Y:          p.Pos.Y,
		VX:         p.Vel.X,
		VY:         p.Vel.Y,
		Damage:     p.Damage,
	}
}
