package cardset

import "testing"

func TestCardIndexRoundTrip(t *testing.T) {
	for i := 0; i < 52; i++ {
		c := CardFromIndex(i)
		if c.Index() != i {
			t.Errorf("CardFromIndex(%d).Index() = %d, want %d", i, c.Index(), i)
		}
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		suit Suit
		rank Rank
	}{
		{"SA", Spades, 12},
		{"as", Spades, 12},
		{"C2", Clubs, 0},
		{"TD", Diamonds, 8},
	}
	for _, tc := range tests {
		c, err := ParseCard(tc.in)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", tc.in, err)
		}
		if c.Suit != tc.suit || c.Rank != tc.rank {
			t.Errorf("ParseCard(%q) = %v, want {%v %v}", tc.in, c, tc.suit, tc.rank)
		}
	}
}

func TestParseCardInvalid(t *testing.T) {
	if _, err := ParseCard("XX"); err == nil {
		t.Errorf("ParseCard(%q) should fail", "XX")
	}
	if _, err := ParseCard("S"); err == nil {
		t.Errorf("ParseCard(%q) should fail", "S")
	}
}

func TestCardSetBasics(t *testing.T) {
	var cs CardSet
	ace := Card{Suit: Spades, Rank: 12}
	if cs.Has(ace) {
		t.Fatal("empty set should not have ace of spades")
	}
	cs = cs.With(ace)
	if !cs.Has(ace) {
		t.Fatal("set should have ace of spades after With")
	}
	if cs.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cs.Len())
	}
	cs = cs.Without(ace)
	if cs.Has(ace) || cs.Len() != 0 {
		t.Fatal("Without should remove the card")
	}
}

func TestParseHandAndRoundTrip(t *testing.T) {
	h, err := ParseHand("952/Q32/QT9/KJ97")
	if err != nil {
		t.Fatalf("ParseHand: %v", err)
	}
	if h.Len() != 13 {
		t.Fatalf("Len() = %d, want 13", h.Len())
	}
	if !h.Has(Card{Suit: Spades, Rank: 7}) { // 9 of spades
		t.Errorf("expected 9S in hand")
	}
	if got := HandString(h); got != "952/Q32/QT9/KJ97" {
		t.Errorf("HandString round trip = %q, want %q", got, "952/Q32/QT9/KJ97")
	}
}

func TestParseHandWrongCount(t *testing.T) {
	if _, err := ParseHand("A/A/A/A"); err == nil {
		t.Fatal("expected error for a 4-card hand")
	}
}

func TestParseDealValid(t *testing.T) {
	_, err := ParseDeal(
		"952/Q32/QT9/KJ97",
		"AT63/76/K842/AQ8",
		"K84/A854/AJ53/53",
		"QJ7/KJT9/76/T642",
	)
	if err != nil {
		t.Fatalf("ParseDeal: %v", err)
	}
}

func TestParseDealDuplicateCard(t *testing.T) {
	_, err := ParseDeal(
		"AKQJT98765432///",
		"AKQJT98765432///",
		"//AKQJT98765432/",
		"///AKQJT98765432",
	)
	if err == nil {
		t.Fatal("expected error for duplicate spade holdings")
	}
}

func TestDirectionArithmetic(t *testing.T) {
	if West.Next(1) != North {
		t.Errorf("West.Next(1) = %v, want North", West.Next(1))
	}
	if West.Next(-1) != South {
		t.Errorf("West.Next(-1) = %v, want South", West.Next(-1))
	}
	if North.Partner() != South {
		t.Errorf("North.Partner() = %v, want South", North.Partner())
	}
	if West.Side() != East.Side() {
		t.Errorf("West and East should share a side")
	}
	if North.Side() == West.Side() {
		t.Errorf("North and West should not share a side")
	}
}

func TestParseStrain(t *testing.T) {
	s, err := ParseStrain('n')
	if err != nil || s != NoTrump {
		t.Errorf("ParseStrain('n') = %v, %v; want NoTrump, nil", s, err)
	}
}
