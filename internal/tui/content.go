package tui

// Copy that lives in the page itself rather than in the API.

const (
	ownerName = "Kevin George"
	ownerRole = "Innovator | Strategist | Visionary"
	tagline   = "Turning complex problems into elegant solutions through strategic thinking and innovative approaches."
)

var aboutParagraphs = []string{
	"I'm a Mobile & Web Application developer with 3+ years of experience; I develop software using extraordinary abilities, strategy, and design to meet any obstacle.",
	"I have worked on a wide range of projects, from simple apps to complex enterprise-level solutions. I am constantly amazed by the power and flexibility of modern technologies, and I believe that they are the future of mobile app development.",
	"My approach combines technical expertise with strategic thinking. I don't just build solutions; I craft experiences that drive results and create lasting impact for my clients and their users.",
}

type counterItem struct {
	target     int
	title      string
	colorClass string
}

var counterItems = []counterItem{
	{3, "Years of Experience", "text-primary"},
	{15, "Projects Completed", "text-secondary"},
	{7, "Worldwide Clients", "text-accent"},
}

func counterTargets() []int {
	out := make([]int, len(counterItems))
	for i, c := range counterItems {
		out[i] = c.target
	}
	return out
}

type strategyItem struct {
	title       string
	description string
	points      []string
	colorClass  string
}

var strategyItems = []strategyItem{
	{
		title:       "Planning & Strategy",
		description: "I analyze your goals, target users, and key requirements to establish a solid foundation for the project. This initial phase includes competitive analysis, user journey mapping, and technical feasibility assessment.",
		points:      []string{"Comprehensive needs analysis", "User experience mapping", "Technical scope definition"},
		colorClass:  "text-primary",
	},
	{
		title:       "Pixel-Perfect UI/UX Design",
		description: "I create intuitive, visually appealing, and accessible interfaces that engage users and drive conversions. My design process combines aesthetic appeal with functional usability.",
		points:      []string{"Responsive wireframing", "Interactive prototyping", "Accessibility compliance"},
		colorClass:  "text-secondary",
	},
	{
		title:       "Agile Development",
		description: "I build scalable, maintainable code using modern technologies and best practices. My development process emphasizes regular iterations and continuous client feedback.",
		points:      []string{"Iterative development cycles", "Clean, documented code", "Regular progress updates"},
		colorClass:  "text-accent",
	},
	{
		title:       "Launch & Optimization",
		description: "I ensure a smooth deployment and provide ongoing support to maximize the product's performance and user satisfaction over time.",
		points:      []string{"Thorough testing", "Performance optimization", "Post-launch support"},
		colorClass:  "text-green-500",
	},
}

type navItem struct {
	id    string
	label string
}

var navItems = []navItem{
	{"home", "Home"},
	{"about", "About"},
	{"milestones", "Milestones"},
	{"strategy", "Strategy"},
	{"portfolio", "Portfolio"},
	{"contact", "Contact"},
}

type filterTab struct {
	key   string
	value string
	label string
}

var filterTabs = []filterTab{
	{"1", "all", "All Projects"},
	{"2", "mobile", "Mobile Apps"},
	{"3", "web", "Web Development"},
	{"4", "ui", "UI/UX Design"},
}

const (
	sentTitle   = "Message Sent"
	sentBody    = "Your message has been sent successfully. I'll get back to you soon!"
	failedTitle = "Error"
	failedBody  = "There was an error sending your message. Please try again later."
)

// fieldHints replace the validator's wording on the contact form.
var fieldHints = map[string]string{
	"name":    "Name must be at least 2 characters",
	"email":   "Please enter a valid email address",
	"subject": "Subject is required",
	"message": "Message must be at least 10 characters",
}
