package jobs

// CommonSkills seeds the vocabulary so that skill extraction works before
// any posting is stored.
var CommonSkills = []string{
	// Programming & technical
	"Python", "Java", "C++", "SQL", "JavaScript", "TypeScript",
	"HTML", "HTML5", "CSS", "CSS3", "ReactJS", "NodeJS", "ExpressJS",
	"Django", "Flask", "RESTful APIs", "GraphQL", "Go",

	// Cloud & devops
	"AWS", "Docker", "Kubernetes", "Git", "Linux", "DevOps",
	"Cloud Computing", "CI/CD",

	// Data science & ML
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch",
	"Data Analysis", "Data Engineering", "Big Data", "Hadoop", "Spark",
	"ETL", "Artificial Intelligence", "Natural Language Processing",

	// Databases
	"MongoDB", "PostgreSQL", "MySQL", "NoSQL", "SQLite",

	// Business & management
	"Project Management", "Business Analysis", "Risk Management",
	"Financial Analysis", "Budgeting", "Accounting", "Quality Assurance",
	"Testing", "Agile", "Scrum",

	// Design
	"User Experience", "UI/UX Design", "Graphic Design", "Figma",
	"Sketch", "Adobe XD", "Canva", "Tailwind CSS",
	"Power BI", "Tableau", "Looker", "QlikView",

	// Marketing & communication
	"Digital Marketing", "SEO", "Content Creation", "Social Media Marketing",
	"Email Marketing", "Salesforce", "CRM", "Google Analytics", "Google Ads",

	// Soft skills
	"Communication", "Leadership", "Problem Solving", "Time Management",
	"Teamwork", "Adaptability", "Public Speaking", "Presentation Skills",
	"Critical Thinking", "Negotiation", "Networking",

	// Productivity tools
	"GitHub", "JIRA", "Trello", "Slack", "Zoom", "Microsoft Teams", "Notion",
	"PowerPoint", "Word", "Excel",

	// Languages
	"English", "Spanish", "French", "German", "Mandarin", "Japanese",
	"Korean", "Russian", "Turkish", "Arabic",
}
