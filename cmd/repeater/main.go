// Command repeater is a terminal-native spaced-repetition study tool: it scans
// Markdown decks for Q:/A: and cloze cards, schedules them with an FSRS-derived
// algorithm, and drills them in priority order.
package main

func main() {
	Execute()
}
