package render

import (
	"image/color"

	"legend-of-kiro/internal/state"
	"legend-of-kiro/internal/world"
)

type style struct {
	fill  color.RGBA
	glyph rune
}

var (
	ColorBackground = color.RGBA{R: 0x3a, G: 0x5f, B: 0x2b, A: 0xff}
	ColorHeart      = color.RGBA{R: 0xe0, G: 0x20, B: 0x30, A: 0xff}
	ColorHeartEmpty = color.RGBA{R: 0x40, G: 0x10, B: 0x10, A: 0xff}
	ColorText       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorShade      = color.RGBA{A: 0xb0}

	colorSwing = color.RGBA{R: 0xf0, G: 0xf0, B: 0xc0, A: 0xc0}
	colorArrow = color.RGBA{R: 0x9a, G: 0x6b, B: 0x3a, A: 0xff}
	colorBolt  = color.RGBA{R: 0xff, G: 0x80, B: 0x20, A: 0xff}
)

var obstacleStyles = map[world.ObstacleKind]style{
	world.ObstacleTree:     {fill: color.RGBA{R: 0x1e, G: 0x6b, B: 0x1e, A: 0xff}, glyph: '♣'},
	world.ObstacleMountain: {fill: color.RGBA{R: 0x7a, G: 0x6a, B: 0x5a, A: 0xff}, glyph: '▲'},
}

var collectibleStyles = map[state.CollectibleKind]style{
	state.CollectibleHeart:          {fill: ColorHeart, glyph: '♥'},
	state.CollectibleHeartContainer: {fill: color.RGBA{R: 0xff, G: 0x90, B: 0xb0, A: 0xff}, glyph: '♡'},
	state.CollectibleCoinPouch:      {fill: color.RGBA{R: 0xf0, G: 0xc0, B: 0x20, A: 0xff}, glyph: '$'},
	state.CollectibleBow:            {fill: colorArrow, glyph: '}'},
	state.CollectibleBattleaxe:      {fill: color.RGBA{R: 0xc0, G: 0xc0, B: 0xd0, A: 0xff}, glyph: 'P'},
	state.CollectibleRedPotion:      {fill: color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}, glyph: '!'},
	state.CollectibleGreenPotion:    {fill: color.RGBA{R: 0x30, G: 0xd0, B: 0x50, A: 0xff}, glyph: '!'},
	state.CollectibleYellowPotion:   {fill: color.RGBA{R: 0xf0, G: 0xe0, B: 0x30, A: 0xff}, glyph: '!'},
	state.CollectibleBluePotion:     {fill: color.RGBA{R: 0x30, G: 0x70, B: 0xf0, A: 0xff}, glyph: '!'},
}

var enemyStyles = map[state.EnemyKind]style{
	state.EnemyBlue:        {fill: color.RGBA{R: 0x40, G: 0x60, B: 0xe0, A: 0xff}, glyph: 'g'},
	state.EnemyRed:         {fill: color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}, glyph: 'g'},
	state.EnemyWhite:       {fill: color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}, glyph: 'g'},
	state.EnemyBlueKobold:  {fill: color.RGBA{R: 0x20, G: 0x30, B: 0x90, A: 0xff}, glyph: 'k'},
	state.EnemyRedKobold:   {fill: color.RGBA{R: 0x90, G: 0x20, B: 0x20, A: 0xff}, glyph: 'k'},
	state.EnemyWhiteKobold: {fill: color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}, glyph: 'k'},
	state.EnemyBoss:        {fill: color.RGBA{R: 0x80, G: 0x20, B: 0xa0, A: 0xff}, glyph: 'B'},
}

var statusTints = map[state.StatusEffect]color.RGBA{
	state.StatusNone:   {R: 0x20, G: 0xc0, B: 0x90, A: 0xff},
	state.StatusRed:    {R: 0xff, G: 0x50, B: 0x50, A: 0xff},
	state.StatusGreen:  {R: 0x50, G: 0xff, B: 0x70, A: 0xff},
	state.StatusYellow: {R: 0xff, G: 0xf0, B: 0x50, A: 0xff},
	state.StatusBlue:   {R: 0x60, G: 0xa0, B: 0xff, A: 0xff},
}

func obstacleStyle(k world.ObstacleKind) style {
	return obstacleStyles[k]
}

func collectibleStyle(k state.CollectibleKind) style {
	return collectibleStyles[k]
}

func enemyStyle(k state.EnemyKind) style {
	return enemyStyles[k]
}

func playerStyle(s state.StatusEffect) style {
	return style{fill: statusTints[s], glyph: '@'}
}
