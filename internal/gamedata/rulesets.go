package gamedata

import (
	"strconv"

	"splinter-planner/internal/domain"
)

// Splinters are the seven thematic elements a card can belong to.
var Splinters = []string{
	"Fire",
	"Water",
	"Earth",
	"Life",
	"Death",
	"Dragon",
	"Neutral",
}

// ManaCaps are the mana budgets a ranked battle can be issued at, as strings
// for direct use in filter forms. 99 is the "unlimited" bucket.
var ManaCaps = func() []string {
	caps := make([]string, 0, 39)
	for v := 12; v < 50; v++ {
		caps = append(caps, strconv.Itoa(v))
	}
	return append(caps, "99")
}()

// Rulesets is the static battle rule modifier catalog. The settings API does
// not expose it, so it is mirrored here.
var Rulesets = []domain.Ruleset{
	{Active: true, Name: "Standard", Description: "No modification to the standard gameplay rules and mechanics."},
	{Active: true, Type: "primary", Name: "Back to Basics", Description: "Monsters lose all abilities."},
	{Active: true, Type: "primary", Name: "Silenced Summoners", Description: "Summoners do not give any stat buffs or debuffs or grant/use any abilities."},
	{Active: true, Type: "primary", Name: "Aim True", Description: "Melee and Ranged attacks always hit their target."},
	{Active: true, Type: "primary", Name: "Super Sneak", Description: "All Melee attack Monsters have the Sneak ability."},
	{Active: true, Type: "primary", Name: "Weak Magic", Description: "Magic attacks hit Armor before reducing Health."},
	{Active: true, Type: "primary", Name: "Unprotected", Description: "Monsters do not have any armor and do not get armor from Abilities or Summoner Buffs."},
	{Active: true, Type: "primary", Name: "Target Practice", Description: "All Ranged and Magic attack Monsters have the Snipe ability."},
	{Active: true, Type: "primary", Name: "Fog of War", Description: "Monsters lose the Sneak and Snipe abilities."},
	{Active: true, Type: "primary", Name: "Armored Up", Description: "All Monsters have 2 Armor in addition to their normal Armor stat."},
	{Active: true, Type: "primary", Name: "Equal Opportunity", Description: "All Monsters have the Opportunity ability."},
	{Active: true, Type: "any", Name: "Healed Out", Description: "All healing abilities are removed from Monsters and Summoners."},
	{Active: true, Type: "any", Name: "Earthquake", Description: "Non-flying Monsters take 2 Melee damage at the end of each round."},
	{Active: true, Type: "any", Name: "Reverse Speed", Description: "Monsters with the lowest Speed attack first and have the highest chance of evading attacks."},
	{Active: true, Type: "any", Name: "Close Range", Description: "Ranged attacks may be used in the first position in battles."},
	{Active: true, Type: "any", Name: "Heavy Hitters", Description: "All Monsters have the Knock Out ability."},
	{Active: true, Type: "any", Name: "Equalizer", Description: "The initial Health of all Monsters is equal to that of the Monster on either team with the highest base Health."},
	{Active: true, Type: "any", Name: "Noxious Fumes", Description: "All Monsters start the battle Poisoned."},
	{Active: true, Type: "any", Name: "Stampede", Description: "The Trample ability can trigger multiple times per attack if the trampled Monster is killed."},
	{Active: true, Type: "any", Name: "Explosive Weaponry", Description: "All Monsters have the Blast ability"},
	{Active: true, Type: "any", Name: "Holy Protection", Description: "All Monsters have the Divine Shield ability."},
	{Active: true, Type: "any", Name: "Spreading Fury", Description: "All Monsters have the Enrage ability."},
	{Active: true, Type: "secondary", Name: "Keep Your Distance", Description: "Monsters with Melee attack may not be used in battles."},
	{Active: true, Type: "secondary", Name: "Lost Legendaries", Description: "Legendary Monsters may not be used in battles."},
	{Active: true, Type: "secondary", Name: "Melee Mayhem", Description: "Melee attack Monsters can attack from any position."},
	{Active: true, Type: "secondary", Name: "Taking Sides", Description: "Neutral Monsters may not be used in battles."},
	{Active: true, Type: "secondary", Name: "Rise of the Commons", Description: "Only Common and Rare Monsters may be used in battles."},
	{Active: true, Type: "secondary", Name: "Up Close & Personal", Description: "Only Monsters with Melee attack may be used in battles."},
	{Active: true, Type: "secondary", Name: "Broken Arrows", Description: "Ranged attack Monsters may not be used in battles."},
	{Active: true, Type: "secondary", Name: "Little League", Description: "Only Monsters & Summoners that cost 4 Mana or less may be used in battles."},
	{Active: true, Type: "secondary", Name: "Lost Magic", Description: "Monsters with Magic attack may not be used in battles."},
	{Active: true, Type: "secondary", Name: "Even Stevens", Description: "Only Monsters with even Mana costs may be used in battles."},
	{Active: true, Type: "secondary", Name: "Odd Ones Out", Description: "Only Monsters with odd Mana costs may be used in battles."},
}
