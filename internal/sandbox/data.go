package sandbox

import (
	"strconv"
	"time"

	"github.com/kazino55/client/internal/model"
)

// Seed catalog mirroring the production lineup closely enough for the client
// to be developed against. All games share one placeholder image.
const gameImage = "/images/game.png"

type gameSeed struct {
	name     string
	category string
	provider string
	featured bool
	jackpot  float64
	rtp      float64
}

var gameSeeds = []gameSeed{
	{name: "Book of Ra Deluxe", category: "slots", provider: "Novomatic", featured: true, rtp: 95.1},
	{name: "Lucky Lady's Charm", category: "slots", provider: "Novomatic", featured: true, rtp: 95.1},
	{name: "Sizzling Hot Deluxe", category: "slots", provider: "Novomatic", featured: true, rtp: 95.7},
	{name: "Columbus Deluxe", category: "slots", provider: "Novomatic", featured: true, rtp: 95.0},
	{name: "Dolphin's Pearl Deluxe", category: "slots", provider: "Novomatic", featured: true, rtp: 95.1},
	{name: "Lord of the Ocean", category: "slots", provider: "Novomatic", rtp: 95.1},
	{name: "Banana Splash", category: "slots", provider: "Novomatic", rtp: 95.0},
	{name: "Gryphon's Gold Deluxe", category: "slots", provider: "Novomatic", rtp: 95.1},
	{name: "Pharaoh's Gold III", category: "slots", provider: "Novomatic", rtp: 95.0},
	{name: "Roaring Forties", category: "slots", provider: "Novomatic", rtp: 95.5},
	{name: "Ultra Hot Deluxe", category: "slots", provider: "Novomatic", rtp: 95.2},
	{name: "Faust", category: "slots", provider: "Novomatic", rtp: 95.1},
	{name: "Katana", category: "slots", provider: "Novomatic", rtp: 95.0},
	{name: "Sharky", category: "slots", provider: "Novomatic", rtp: 95.0},
	{name: "Power Stars", category: "slots", provider: "Novomatic", rtp: 95.5},
	{name: "European Roulette", category: "table", provider: "Evolution", rtp: 97.3},
	{name: "American Roulette", category: "table", provider: "Evolution", rtp: 94.7},
	{name: "Blackjack Classic", category: "table", provider: "Evolution", rtp: 99.5},
	{name: "Baccarat Pro", category: "table", provider: "Evolution", rtp: 98.9},
	{name: "Poker Three Card", category: "table", provider: "Evolution", rtp: 96.6},
	{name: "Live Blackjack", category: "live", provider: "Evolution", rtp: 99.5},
	{name: "Live Roulette", category: "live", provider: "Evolution", rtp: 97.3},
	{name: "Live Baccarat", category: "live", provider: "Evolution", rtp: 98.9},
	{name: "Dream Catcher", category: "live", provider: "Evolution", rtp: 96.6},
	{name: "Lightning Roulette", category: "live", provider: "Evolution", rtp: 97.3},
	{name: "Mega Moolah", category: "jackpot", provider: "Microgaming", jackpot: 12500000, rtp: 96.5},
	{name: "Divine Fortune", category: "jackpot", provider: "NetEnt", jackpot: 250000, rtp: 96.6},
	{name: "Hall of Gods", category: "jackpot", provider: "NetEnt", jackpot: 180000, rtp: 95.7},
	{name: "Arabian Nights", category: "jackpot", provider: "NetEnt", jackpot: 95000, rtp: 95.6},
	{name: "Major Millions", category: "jackpot", provider: "Microgaming", jackpot: 450000, rtp: 89.4},
	{name: "Sweet Bonanza", category: "new", provider: "Pragmatic Play", rtp: 96.5},
	{name: "Gates of Olympus", category: "new", provider: "Pragmatic Play", rtp: 96.5},
	{name: "Wolf Gold", category: "new", provider: "Pragmatic Play", rtp: 96.0},
	{name: "Big Bass Bonanza", category: "new", provider: "Pragmatic Play", rtp: 96.7},
	{name: "The Dog House", category: "new", provider: "Pragmatic Play", rtp: 96.5},
	{name: "Starburst", category: "slots", provider: "NetEnt", rtp: 96.1},
	{name: "Gonzo's Quest", category: "slots", provider: "NetEnt", rtp: 95.9},
	{name: "Book of Dead", category: "slots", provider: "Play'n GO", rtp: 94.2},
	{name: "Reactoonz", category: "slots", provider: "Play'n GO", rtp: 96.5},
	{name: "Dead or Alive 2", category: "slots", provider: "NetEnt", rtp: 96.8},
	{name: "Jammin' Jars", category: "slots", provider: "Push Gaming", rtp: 96.8},
	{name: "Fire Joker", category: "slots", provider: "Play'n GO", rtp: 96.2},
	{name: "Immortal Romance", category: "slots", provider: "Microgaming", rtp: 96.9},
	{name: "Thunderstruck II", category: "slots", provider: "Microgaming", rtp: 96.6},
	{name: "Twin Spin", category: "slots", provider: "NetEnt", rtp: 96.6},
}

type winnerSeed struct {
	username   string
	game       string
	amount     float64
	minutesAgo int
}

var winnerSeeds = []winnerSeed{
	{"BəxtliOyunçu88", "Mega Moolah", 125000, 5},
	{"QızılSpinner", "Book of Dead", 8500, 12},
	{"RuletKralı", "Lightning Roulette", 15000, 18},
	{"BlackjackPro", "Blackjack VIP", 3200, 25},
	{"StarburstFan", "Starburst", 2100, 32},
	{"CekpotAvcısı", "Divine Fortune", 45000, 38},
	{"SlotUstası", "Sweet Bonanza", 7800, 45},
	{"KazinoŞampiyonu", "Wolf Gold", 12500, 52},
	{"YüksəkOyunçu", "Crazy Time", 28000, 58},
	{"QalibDairəsi", "Gates of Olympus", 9200, 65},
	{"AzərbaycanlıAs", "Mega Moolah", 67000, 72},
	{"BakıOyunçusu", "Lightning Roulette", 11200, 78},
	{"QızılEllər", "Book of Dead", 5600, 85},
	{"CanlıDiler", "Live Blackjack", 8900, 92},
	{"SlotMaestro", "Sweet Bonanza", 13400, 98},
}

func seedGames() []model.Game {
	created := time.Now().Add(-90 * 24 * time.Hour)
	games := make([]model.Game, 0, len(gameSeeds))
	for i, s := range gameSeeds {
		games = append(games, model.Game{
			ID:        strconv.Itoa(i + 1),
			Name:      s.name,
			Category:  s.category,
			Provider:  s.provider,
			Image:     gameImage,
			Featured:  s.featured,
			Jackpot:   s.jackpot,
			RTP:       s.rtp,
			IsActive:  true,
			CreatedAt: created,
		})
	}
	return games
}

func seedWinners() []model.Winner {
	now := time.Now()
	winners := make([]model.Winner, 0, len(winnerSeeds))
	for i, s := range winnerSeeds {
		winners = append(winners, model.Winner{
			ID:        strconv.Itoa(i + 1),
			Username:  s.username,
			Game:      s.game,
			Amount:    s.amount,
			Timestamp: now.Add(-time.Duration(s.minutesAgo) * time.Minute),
		})
	}
	return winners
}

func seedConfig() model.PlatformConfig {
	return model.PlatformConfig{
		Currencies:     []string{"AZN", "USD", "EUR"},
		Languages:      []string{"az", "en", "ru"},
		PaymentMethods: []string{"card", "c2c", "wallet"},
		GameCategories: []string{"slots", "table", "live", "jackpot", "new"},
		Wallets:        []string{"chcblack", "brombet"},
		Features: model.Features{
			BrombetWalletEnabled: true,
			AviatorEnabled:       true,
			XliveEnabled:         false,
		},
	}
}
