// Seeds the question bank with a starter set of questions for each level.
// Existing questions are left untouched, so the script is safe to re-run.
//
// Usage: go run scripts/seed_questions.go

package main

import (
	"log"
	"os"

	"skillcheck_backend/internal/config"
	"skillcheck_backend/internal/model"
	"skillcheck_backend/pkg/database"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("failed to parse config file: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var count int64
	db.Model(&model.AssessmentQuestion{}).Count(&count)
	if count > 0 {
		log.Printf("question bank already has %d questions, nothing to do", count)
		return
	}

	for _, q := range starterQuestions() {
		if err := db.Create(&q).Error; err != nil {
			log.Fatalf("failed to insert question: %v", err)
		}
	}

	log.Println("question bank seeded")
}

func mc(level model.Level, text string, correct string, wrong ...string) model.AssessmentQuestion {
	choices := []model.Choice{{Text: correct, IsCorrect: true, Position: 1}}
	for i, w := range wrong {
		choices = append(choices, model.Choice{Text: w, Position: i + 2})
	}
	return model.AssessmentQuestion{
		Level:   level,
		Type:    model.MultipleChoice,
		Text:    text,
		Choices: choices,
	}
}

func starterQuestions() []model.AssessmentQuestion {
	return []model.AssessmentQuestion{
		mc(model.Level1,
			"A client's family member speaks to you in a frustrated tone. What is the most professional first response?",
			"Stay calm, listen to their concern, and acknowledge their frustration",
			"Explain that you are too busy to talk right now",
			"Respond in the same tone so they know you are serious",
			"Refer them to your supervisor without listening"),
		mc(model.Level1,
			"You are running late for a shift. What should you do?",
			"Notify your coordinator as soon as possible and give an honest arrival estimate",
			"Arrive late without notice since shifts often overlap",
			"Ask a colleague to sign you in on time",
			"Skip the shift and make it up later"),
		mc(model.Level1,
			"Which of the following best demonstrates reliability?",
			"Consistently completing assigned tasks and documenting them accurately",
			"Doing tasks only when reminded",
			"Delegating your duties to whoever is available",
			"Focusing on speed over accuracy"),
		mc(model.Level2,
			"A colleague on your care team missed a scheduled check. What is the best team-oriented response?",
			"Cover the immediate need if safe, then raise it directly and respectfully with the colleague",
			"Report them to management without speaking to them",
			"Ignore it since it is not your responsibility",
			"Mention it to other colleagues informally"),
		mc(model.Level2,
			"During handoff, the incoming caregiver seems unaware of a recent change in a client's routine. You should:",
			"Walk them through the change and confirm it is reflected in the care notes",
			"Assume they will read the notes eventually",
			"Leave quickly since your shift is over",
			"Tell the client to explain it themselves"),
		mc(model.Level2,
			"Which action best supports quality of care across a team?",
			"Keeping care documentation current so every team member works from the same information",
			"Relying on memory for client preferences",
			"Handling everything yourself to avoid confusion",
			"Sharing updates only when asked"),
		mc(model.Level3,
			"A client asks you to keep a health concern secret from their family and care team. You should:",
			"Explain that safety-relevant information must be shared with the care team, and involve them in how it is communicated",
			"Promise to keep it secret to maintain trust",
			"Tell the family immediately without informing the client",
			"Ignore the concern since it was shared in confidence"),
		mc(model.Level3,
			"You notice a colleague accepting an expensive gift from a client. What is the most appropriate action?",
			"Remind them of the gift policy and report it through the proper channel if it continues",
			"Say nothing since it does not involve you",
			"Accept gifts yourself since others do",
			"Confront them angrily in front of the client"),
		mc(model.Level3,
			"A client with fluctuating capacity refuses care that their care plan requires. The most ethical response is to:",
			"Respect their refusal in the moment, document it, and escalate to the care team for review",
			"Proceed with the care anyway since the plan requires it",
			"Skip the care permanently without telling anyone",
			"Ask the family to pressure the client"),
	}
}
