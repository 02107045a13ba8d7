// Command datagen produces a synthetic labeled message corpus for offline
// training. Templates cover ordinary chatter plus the four scam families the
// classifier must recognize; OTP digits are randomized so the model cannot
// memorize a literal code.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	Output        string `default:"messages.csv"`
	Seed          int64  `default:"42"`
	Legit         int    `default:"300"`
	Otp           int    `default:"150"`
	Phishing      int    `default:"100"`
	Impersonation int    `default:"50"`
	Other         int    `default:"50"`
}

var legitTemplates = []string{
	"Hey, are we still meeting at 5pm?",
	"Can you send the report by tomorrow morning?",
	"Let's push the deployment to Friday.",
	"Happy birthday! Hope you have a great day :)",
	"Call me when you are free.",
}

var otpScams = []string{
	"I just sent you a code by mistake, can you forward it?",
	"WhatsApp verification code: 123456. Please share the code so I can confirm.",
	"Your account code 987654 — please confirm by sending it here.",
	"This is WhatsApp support. Your OTP is 345678. Please share to verify.",
	"Please send me the 6-digit code I sent you — I need to log in.",
}

var phishingScams = []string{
	"Your parcel is ready for delivery. Click http://fake-delivery.example to confirm.",
	"We detected unusual activity, verify here: http://verify.example",
	"You have won a prize! Click this link to claim your reward: http://scam.example",
	"Bank alert: Your account needs verification. Login at http://bank.example",
}

var impersonationScams = []string{
	"Hi it's John on a new number — can you confirm my code? 564321",
	"Hey it's Sam, lost my phone. I changed numbers, send me the verification code.",
	"This is your colleague Mark, I'm on a temporary phone — what's the code?",
}

var otherScams = []string{
	"Transfer me $200 now, my account is frozen.",
	"Urgent! Send money to this number or I'll be in trouble.",
	"Investment opportunity, send your account details.",
}

type row struct {
	text      string
	label     string
	scamType  string
	timestamp time.Time
}

func main() {
	var config Config
	if err := envconfig.Process("datagen", &config); err != nil {
		color.Red.Printf("Config error: %v\n", err)
		os.Exit(1)
	}

	seed := flag.Int64("seed", config.Seed, "random seed")
	output := flag.String("out", config.Output, "output CSV path")
	flag.Parse()
	config.Seed = *seed
	config.Output = *output

	rng := rand.New(rand.NewSource(config.Seed))
	rows := makeMessages(rng, config)

	if err := writeCSV(config.Output, rows); err != nil {
		color.Red.Printf("Failed to write %s: %v\n", config.Output, err)
		os.Exit(1)
	}

	printSummary(rows)
	color.Green.Printf("%s created with %d rows\n", config.Output, len(rows))
}

func makeMessages(rng *rand.Rand, config Config) []row {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// timestamps are spread uniformly over 90 days
	randomTime := func() time.Time {
		return start.Add(time.Duration(rng.Intn(60*24*90)) * time.Minute)
	}
	pick := func(templates []string) string {
		return templates[rng.Intn(len(templates))]
	}

	var rows []row
	for i := 0; i < config.Legit; i++ {
		rows = append(rows, row{text: pick(legitTemplates), label: "legit", scamType: "none", timestamp: randomTime()})
	}
	for i := 0; i < config.Otp; i++ {
		text := obfuscateDigits(pick(otpScams), rng)
		rows = append(rows, row{text: text, label: "scam", scamType: "otp", timestamp: randomTime()})
	}
	for i := 0; i < config.Phishing; i++ {
		rows = append(rows, row{text: pick(phishingScams), label: "scam", scamType: "phishing", timestamp: randomTime()})
	}
	for i := 0; i < config.Impersonation; i++ {
		rows = append(rows, row{text: pick(impersonationScams), label: "scam", scamType: "impersonation", timestamp: randomTime()})
	}
	for i := 0; i < config.Other; i++ {
		rows = append(rows, row{text: pick(otherScams), label: "scam", scamType: "other", timestamp: randomTime()})
	}

	rng.Shuffle(len(rows), func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
	})
	return rows
}

// obfuscateDigits swaps the canonical placeholder code for a random 6-digit
// one so each OTP sample carries a different number.
func obfuscateDigits(text string, rng *rand.Rand) string {
	code := strconv.Itoa(100000 + rng.Intn(900000))
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if i+6 <= len(text) && text[i:i+6] == "123456" {
			out = append(out, code...)
			i += 5
			continue
		}
		out = append(out, text[i])
	}
	return string(out)
}

func writeCSV(path string, rows []row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"text", "label", "scam_type", "timestamp"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.text, r.label, r.scamType, r.timestamp.Format("2006-01-02 15:04:05")}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func printSummary(rows []row) {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.label+"/"+r.scamType]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Label/Type", "Count"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, k := range keys {
		table.Append([]string{k, fmt.Sprintf("%d", counts[k])})
	}
	table.Render()
}
