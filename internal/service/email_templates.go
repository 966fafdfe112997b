package service

import "fmt"

func welcomeEmailTemplate(dashboardURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi,

Your account is ready. Create your first goal and prove it with a photo each day or week to build a streak.

Get started: %s

Best,
The %s Team`, dashboardURL, appName)

	return subject, body
}

func reminderEmailTemplate(goalTitle, closesAt string, streak int, goalURL, appName string) (string, string) {
	subject := fmt.Sprintf("Time for %q", goalTitle)

	streakLine := "Start a new streak today."
	if streak == 1 {
		streakLine = "You're on a 1 period streak. Keep it going!"
	} else if streak > 1 {
		streakLine = fmt.Sprintf("You're on a %d period streak. Keep it going!", streak)
	}

	body := fmt.Sprintf(`Hi,

Your window to submit proof for %q is open until %s.

%s

Submit your photo: %s

Best,
The %s Team`, goalTitle, closesAt, streakLine, goalURL, appName)

	return subject, body
}

func breakEndedEmailTemplate(goalTitle string, carryover int, goalURL, appName string) (string, string) {
	subject := fmt.Sprintf("Your break from %q is over", goalTitle)
	body := fmt.Sprintf(`Hi,

Your break from %q reached your plan's limit and has ended. Your streak of %d is waiting for you.
Submit proof in your next window to keep it.

%s

Best,
The %s Team`, goalTitle, carryover, goalURL, appName)

	return subject, body
}
