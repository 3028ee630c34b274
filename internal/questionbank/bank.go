// Package questionbank carries the fixed self-assessment catalog: 31
// multiple-choice questions across six categories. The bank is static
// configuration, loaded once and never mutated; deployments that manage
// content externally can load a bank with the same shape from Postgres.
package questionbank

import (
	"fmt"

	"secassess-service/internal/domain"
)

// DefaultBankID identifies the compiled-in catalog.
const DefaultBankID = "journalist-security-v1"

// Default returns the compiled-in assessment catalog.
func Default() domain.Bank {
	return domain.Bank{ID: DefaultBankID, Questions: questions()}
}

// Validate checks the structural invariants every bank must satisfy before
// it is scored against: non-empty, unique question IDs, at least two options
// per question with unique values, and non-negative points.
func Validate(bank domain.Bank) error {
	if len(bank.Questions) == 0 {
		return domain.ErrEmptyBank
	}
	seen := make(map[string]bool, len(bank.Questions))
	for _, q := range bank.Questions {
		if q.ID == "" {
			return fmt.Errorf("question with empty id in bank %q", bank.ID)
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if len(q.Options) < 2 {
			return fmt.Errorf("question %q has %d options, need at least 2", q.ID, len(q.Options))
		}
		values := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if values[opt.Value] {
				return fmt.Errorf("question %q has duplicate option value %q", q.ID, opt.Value)
			}
			values[opt.Value] = true
			if opt.Points < 0 {
				return fmt.Errorf("question %q option %q has negative points", q.ID, opt.Value)
			}
		}
	}
	return nil
}

func questions() []domain.Question {
	return []domain.Question{
		// Work-context threat exposure. Higher points mean a safer context,
		// so a low category percentage marks high-threat work.
		{
			ID: "risk-beat", Category: domain.CategoryRisk,
			Prompt: "Which best describes the topics you report on?",
			Options: []domain.Option{
				{Value: "conflict", Label: "Armed conflict, organized crime, or state security", Points: 0},
				{Value: "corruption", Label: "Corruption, politics, or investigative work", Points: 1},
				{Value: "social", Label: "Social issues or local news", Points: 2},
				{Value: "lifestyle", Label: "Lifestyle, culture, or sports", Points: 3},
			},
		},
		{
			ID: "risk-threats", Category: domain.CategoryRisk,
			Prompt: "Have you or colleagues received threats related to your work?",
			Options: []domain.Option{
				{Value: "direct", Label: "Yes, directed at me personally", Points: 0},
				{Value: "colleagues", Label: "Yes, at colleagues covering similar stories", Points: 1},
				{Value: "general", Label: "Only general hostility toward the press", Points: 2},
				{Value: "none", Label: "No threats", Points: 3},
			},
		},
		{
			ID: "risk-sources", Category: domain.CategoryRisk,
			Prompt: "Do you work with confidential sources who could face retaliation?",
			Options: []domain.Option{
				{Value: "regularly", Label: "Regularly, including at-risk sources", Points: 0},
				{Value: "occasionally", Label: "Occasionally", Points: 1},
				{Value: "rarely", Label: "Rarely", Points: 2},
				{Value: "never", Label: "Never", Points: 3},
			},
		},
		{
			ID: "risk-region", Category: domain.CategoryRisk,
			Prompt: "How would you describe press freedom where you work?",
			Options: []domain.Option{
				{Value: "hostile", Label: "Journalists are surveilled, detained, or worse", Points: 0},
				{Value: "restricted", Label: "Legal harassment or censorship is common", Points: 1},
				{Value: "pressured", Label: "Occasional pressure, generally safe", Points: 2},
				{Value: "free", Label: "Strong legal protections", Points: 3},
			},
		},
		{
			ID: "risk-travel", Category: domain.CategoryRisk,
			Prompt: "How often do you travel to high-risk areas or cross borders for work?",
			Options: []domain.Option{
				{Value: "frequently", Label: "Frequently", Points: 0},
				{Value: "sometimes", Label: "A few times a year", Points: 1},
				{Value: "rarely", Label: "Rarely", Points: 2},
				{Value: "never", Label: "Never", Points: 3},
			},
		},

		// Password and account hygiene.
		{
			ID: "pw-manager", Category: domain.CategoryPassword,
			Prompt: "Do you use a password manager?",
			Options: []domain.Option{
				{Value: "all", Label: "Yes, for all accounts", Points: 3},
				{Value: "some", Label: "For some accounts", Points: 2},
				{Value: "browser", Label: "Only the browser's built-in storage", Points: 1},
				{Value: "none", Label: "No", Points: 0},
			},
		},
		{
			ID: "pw-reuse", Category: domain.CategoryPassword,
			Prompt: "How often do you reuse the same password across accounts?",
			Options: []domain.Option{
				{Value: "never", Label: "Never, every account is unique", Points: 3},
				{Value: "few", Label: "A few low-value accounts share one", Points: 2},
				{Value: "often", Label: "Often", Points: 1},
				{Value: "always", Label: "I use one or two passwords everywhere", Points: 0},
			},
		},
		{
			ID: "pw-2fa-email", Category: domain.CategoryPassword,
			Prompt: "Is two-factor authentication enabled on your primary email?",
			Options: []domain.Option{
				{Value: "key", Label: "Yes, with a hardware security key", Points: 3},
				{Value: "app", Label: "Yes, with an authenticator app", Points: 2},
				{Value: "sms", Label: "Yes, via SMS codes", Points: 1},
				{Value: "no", Label: "No", Points: 0},
			},
		},
		{
			ID: "pw-2fa-social", Category: domain.CategoryPassword,
			Prompt: "Is two-factor authentication enabled on your social media accounts?",
			Options: []domain.Option{
				{Value: "all", Label: "On all of them", Points: 3},
				{Value: "main", Label: "On the accounts I use for work", Points: 2},
				{Value: "some", Label: "On a few", Points: 1},
				{Value: "none", Label: "On none", Points: 0},
			},
		},
		{
			ID: "pw-strength", Category: domain.CategoryPassword,
			Prompt: "How do you create new passwords?",
			Options: []domain.Option{
				{Value: "generated", Label: "Randomly generated, 16+ characters", Points: 3},
				{Value: "passphrase", Label: "Long passphrases I invent", Points: 2},
				{Value: "pattern", Label: "A personal pattern with variations", Points: 1},
				{Value: "memorable", Label: "Short memorable words or dates", Points: 0},
			},
		},
		{
			ID: "pw-breach", Category: domain.CategoryPassword,
			Prompt: "Do you check whether your accounts appear in data breaches?",
			Options: []domain.Option{
				{Value: "monitored", Label: "Yes, with automatic breach monitoring", Points: 3},
				{Value: "periodic", Label: "I check periodically", Points: 2},
				{Value: "once", Label: "I checked once", Points: 1},
				{Value: "never", Label: "Never", Points: 0},
			},
		},

		// Device security.
		{
			ID: "dev-updates", Category: domain.CategoryDevice,
			Prompt: "How quickly do you install system updates on your work devices?",
			Options: []domain.Option{
				{Value: "auto", Label: "Automatic updates are on", Points: 3},
				{Value: "week", Label: "Within a week of release", Points: 2},
				{Value: "eventually", Label: "Eventually, when convenient", Points: 1},
				{Value: "ignore", Label: "I postpone them indefinitely", Points: 0},
			},
		},
		{
			ID: "dev-encryption", Category: domain.CategoryDevice,
			Prompt: "Is full-disk encryption enabled on your laptop and phone?",
			Options: []domain.Option{
				{Value: "both", Label: "Yes, on both", Points: 3},
				{Value: "phone", Label: "Only on my phone", Points: 2},
				{Value: "unsure", Label: "I'm not sure", Points: 1},
				{Value: "no", Label: "No", Points: 0},
			},
		},
		{
			ID: "dev-lock", Category: domain.CategoryDevice,
			Prompt: "How are your devices locked when unattended?",
			Options: []domain.Option{
				{Value: "strong", Label: "Strong passcode or biometrics, short auto-lock", Points: 3},
				{Value: "pin", Label: "A simple PIN", Points: 2},
				{Value: "pattern", Label: "A swipe pattern", Points: 1},
				{Value: "none", Label: "No lock", Points: 0},
			},
		},
		{
			ID: "dev-antimalware", Category: domain.CategoryDevice,
			Prompt: "Do you run reputable security software on your computer?",
			Options: []domain.Option{
				{Value: "yes", Label: "Yes, kept up to date", Points: 3},
				{Value: "builtin", Label: "Only what the OS ships with", Points: 2},
				{Value: "expired", Label: "It's installed but out of date", Points: 1},
				{Value: "no", Label: "No", Points: 0},
			},
		},
		{
			ID: "dev-separation", Category: domain.CategoryDevice,
			Prompt: "Do you separate work and personal use across devices or profiles?",
			Options: []domain.Option{
				{Value: "devices", Label: "Separate devices for sensitive work", Points: 3},
				{Value: "profiles", Label: "Separate accounts or profiles", Points: 2},
				{Value: "partial", Label: "Some separation", Points: 1},
				{Value: "mixed", Label: "Everything on one device", Points: 0},
			},
		},

		// Communication security.
		{
			ID: "comm-messaging", Category: domain.CategoryCommunication,
			Prompt: "What do you use for sensitive conversations with sources?",
			Options: []domain.Option{
				{Value: "e2e", Label: "End-to-end encrypted apps with disappearing messages", Points: 3},
				{Value: "encrypted", Label: "End-to-end encrypted apps", Points: 2},
				{Value: "standard", Label: "Standard messaging or email", Points: 1},
				{Value: "phone", Label: "Regular phone calls and SMS", Points: 0},
			},
		},
		{
			ID: "comm-email", Category: domain.CategoryCommunication,
			Prompt: "Do you use encrypted email (PGP or similar) when needed?",
			Options: []domain.Option{
				{Value: "routine", Label: "Routinely for sensitive material", Points: 3},
				{Value: "capable", Label: "I can, when a source requests it", Points: 2},
				{Value: "aware", Label: "I know of it but have never set it up", Points: 1},
				{Value: "no", Label: "No", Points: 0},
			},
		},
		{
			ID: "comm-vpn", Category: domain.CategoryCommunication,
			Prompt: "Do you use a VPN on untrusted networks?",
			Options: []domain.Option{
				{Value: "always", Label: "Always", Points: 3},
				{Value: "public", Label: "On public Wi-Fi", Points: 2},
				{Value: "sometimes", Label: "Sometimes", Points: 1},
				{Value: "never", Label: "Never", Points: 0},
			},
		},
		{
			ID: "comm-metadata", Category: domain.CategoryCommunication,
			Prompt: "Do you consider call and message metadata when contacting sources?",
			Options: []domain.Option{
				{Value: "minimize", Label: "Yes, I actively minimize metadata trails", Points: 3},
				{Value: "aware", Label: "I'm aware and sometimes adjust", Points: 2},
				{Value: "vague", Label: "Vaguely aware", Points: 1},
				{Value: "no", Label: "I hadn't thought about it", Points: 0},
			},
		},
		{
			ID: "comm-phishing", Category: domain.CategoryCommunication,
			Prompt: "How do you handle unexpected links and attachments?",
			Options: []domain.Option{
				{Value: "verify", Label: "Verify out-of-band before opening", Points: 3},
				{Value: "inspect", Label: "Inspect sender and URL carefully", Points: 2},
				{Value: "cautious", Label: "Open them if they look plausible", Points: 1},
				{Value: "open", Label: "Open them", Points: 0},
			},
		},

		// Data protection.
		{
			ID: "data-backup", Category: domain.CategoryData,
			Prompt: "How do you back up your work?",
			Options: []domain.Option{
				{Value: "encrypted", Label: "Automatic encrypted backups, tested restores", Points: 3},
				{Value: "auto", Label: "Automatic cloud backups", Points: 2},
				{Value: "manual", Label: "Occasional manual copies", Points: 1},
				{Value: "none", Label: "No backups", Points: 0},
			},
		},
		{
			ID: "data-storage", Category: domain.CategoryData,
			Prompt: "Where do you keep sensitive documents and source material?",
			Options: []domain.Option{
				{Value: "encrypted", Label: "In encrypted containers or drives", Points: 3},
				{Value: "cloud2fa", Label: "Cloud storage behind two-factor auth", Points: 2},
				{Value: "plain", Label: "Ordinary folders on my device", Points: 1},
				{Value: "everywhere", Label: "Scattered across devices and inboxes", Points: 0},
			},
		},
		{
			ID: "data-sharing", Category: domain.CategoryData,
			Prompt: "How do you share large sensitive files?",
			Options: []domain.Option{
				{Value: "secure", Label: "Encrypted transfer tools (e.g. OnionShare)", Points: 3},
				{Value: "links", Label: "Expiring password-protected links", Points: 2},
				{Value: "cloud", Label: "Regular cloud-share links", Points: 1},
				{Value: "email", Label: "Email attachments", Points: 0},
			},
		},
		{
			ID: "data-deletion", Category: domain.CategoryData,
			Prompt: "When a story is done, what happens to sensitive material you no longer need?",
			Options: []domain.Option{
				{Value: "secure", Label: "Securely wiped on a schedule", Points: 3},
				{Value: "deleted", Label: "Deleted normally", Points: 2},
				{Value: "archived", Label: "Kept indefinitely, unencrypted", Points: 1},
				{Value: "unknown", Label: "I don't keep track", Points: 0},
			},
		},
		{
			ID: "data-anonymize", Category: domain.CategoryData,
			Prompt: "Do you strip identifying metadata from documents and photos before publishing?",
			Options: []domain.Option{
				{Value: "always", Label: "Always, with dedicated tools", Points: 3},
				{Value: "sensitive", Label: "For sensitive material", Points: 2},
				{Value: "sometimes", Label: "Sometimes", Points: 1},
				{Value: "never", Label: "Never", Points: 0},
			},
		},

		// Physical security.
		{
			ID: "phys-devices", Category: domain.CategoryPhysical,
			Prompt: "Are your devices ever left unattended in public or shared spaces?",
			Options: []domain.Option{
				{Value: "never", Label: "Never", Points: 3},
				{Value: "locked", Label: "Only locked away", Points: 2},
				{Value: "briefly", Label: "Briefly, now and then", Points: 1},
				{Value: "often", Label: "Often", Points: 0},
			},
		},
		{
			ID: "phys-screen", Category: domain.CategoryPhysical,
			Prompt: "Do you shield your screen when working in public?",
			Options: []domain.Option{
				{Value: "filter", Label: "Privacy filter and seat selection", Points: 3},
				{Value: "aware", Label: "I position myself carefully", Points: 2},
				{Value: "sometimes", Label: "Sometimes", Points: 1},
				{Value: "no", Label: "No", Points: 0},
			},
		},
		{
			ID: "phys-home", Category: domain.CategoryPhysical,
			Prompt: "How is sensitive material secured at your home or office?",
			Options: []domain.Option{
				{Value: "safe", Label: "Locked safe or cabinet", Points: 3},
				{Value: "locked", Label: "Locked room", Points: 2},
				{Value: "hidden", Label: "Out of sight", Points: 1},
				{Value: "open", Label: "In the open", Points: 0},
			},
		},
		{
			ID: "phys-travel", Category: domain.CategoryPhysical,
			Prompt: "When crossing borders or checkpoints, how do you prepare your devices?",
			Options: []domain.Option{
				{Value: "clean", Label: "Travel with clean devices, restore later", Points: 3},
				{Value: "minimal", Label: "Remove sensitive material beforehand", Points: 2},
				{Value: "lock", Label: "Power off and rely on encryption", Points: 1},
				{Value: "nothing", Label: "No special preparation", Points: 0},
			},
		},
		{
			ID: "phys-emergency", Category: domain.CategoryPhysical,
			Prompt: "Do you have a plan if a device is lost, stolen, or seized?",
			Options: []domain.Option{
				{Value: "full", Label: "Remote wipe, revocation steps, and contacts rehearsed", Points: 3},
				{Value: "wipe", Label: "Remote wipe is set up", Points: 2},
				{Value: "idea", Label: "A rough idea", Points: 1},
				{Value: "none", Label: "No plan", Points: 0},
			},
		},
	}
}
