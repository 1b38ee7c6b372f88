package domain

var (
	mnemonicAdjectives = []string{
		"Happy", "Bright", "Swift", "Clever", "Gentle", "Bold", "Calm", "Brave",
		"Eager", "Kind", "Proud", "Wise", "Loyal", "Noble", "Quiet", "Smart",
	}
	mnemonicNouns = []string{
		"Tiger", "Eagle", "Panda", "Dolphin", "Wolf", "Lion", "Falcon", "Bear",
		"Hawk", "Whale", "Fox", "Deer", "Owl", "Rabbit", "Turtle", "Horse",
	}
)

// Mnemonic derives a stable "Adjective Noun" label from the first eight
// bytes of id. Shorter ids are padded with '0'.
func Mnemonic(id string) string {
	var frag [8]byte
	for i := range frag {
		frag[i] = '0'
		if i < len(id) {
			frag[i] = id[i]
		}
	}

	adj, noun := 0, 0
	for i := 0; i < 4; i++ {
		adj += int(frag[i])
	}
	for i := 4; i < 8; i++ {
		noun += int(frag[i])
	}

	return mnemonicAdjectives[adj%len(mnemonicAdjectives)] + " " + mnemonicNouns[noun%len(mnemonicNouns)]
}
