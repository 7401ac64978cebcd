package core

import (
	"fmt"
	"strings"
)

// Rule maps a group of trigger substrings to one canned response.
type Rule struct {
	Name     string
	Triggers []string
	Response string
}

// Matches reports whether any trigger occurs in the lower-cased message.
func (r Rule) Matches(lowered string) bool {
	for _, trigger := range r.Triggers {
		if strings.Contains(lowered, trigger) {
			return true
		}
	}
	return false
}

const fallbackTemplate = "Thanks for your question about \"%s\". I'm currently being enhanced with full NLWeb and Azure OpenAI capabilities to provide more intelligent responses about David's work and interests. For now, you can explore the blog, projects, and about sections to learn more about David's expertise in Azure, developer productivity, and technology."

var defaultRules = []Rule{
	{
		Name:     "azure",
		Triggers: []string{"azure", "cloud", "microsoft"},
		Response: "David has extensive experience with Azure and Microsoft technologies. He works as a Global Black Belt for Azure Developer Productivity at Microsoft. You can find many of his blog posts about Azure Cosmos DB, Azure OpenAI, Azure Cognitive Search, and other Azure services on his blog. He's particularly passionate about helping developers be more productive with Azure tools and services.",
	},
	{
		Name:     "blog",
		Triggers: []string{"blog", "posts", "articles", "writing"},
		Response: "David loves writing and sharing about technology. His blog covers topics like Azure services, developer productivity, cloud development environments, and modern software development practices. Some of his popular posts include topics on Azure Cosmos DB with Azure OpenAI, GitHub Codespaces vs Microsoft DevBox, and various Azure integrations. You can explore all his posts in the blog section.",
	},
	{
		Name:     "projects",
		Triggers: []string{"projects", "github", "open source"},
		Response: "All of David's projects are open source and available on GitHub. He's contributed to various projects related to Azure, developer tools, and web technologies. You can check out his projects section to see his latest work, including this website itself which is built with Docusaurus and deployed on Azure Static Web Apps.",
	},
	{
		Name:     "speaking",
		Triggers: []string{"speaking", "presentations", "talks", "sessions"},
		Response: "David is an active speaker in the tech community. You can find his speaking sessions and presentations on Sessionize. He often talks about Azure services, developer productivity, cloud development, and modern software development practices. His sessions cover both technical deep-dives and practical guidance for developers.",
	},
	{
		Name:     "background",
		Triggers: []string{"about", "career", "background", "experience"},
		Response: "David Sanchez is a Global Black Belt for Azure Developer Productivity at Microsoft. He's passionate about helping people build innovative solutions with technology. His expertise spans Azure cloud services, developer tools, and modern software development practices. You can learn more about his career and background in the About section of his website.",
	},
	{
		Name:     "contact",
		Triggers: []string{"contact", "reach", "connect"},
		Response: "You can connect with David through multiple channels: LinkedIn (linkedin.com/in/dsanchezcr), Twitter (@dsanchezcr), GitHub (@dsanchezcr), and through the contact form on this website. He's also active on YouTube and other social platforms where he shares content about technology and development.",
	},
}

// Responder picks canned answers by ordered keyword matching.
// It holds no mutable state and is safe for concurrent use.
type Responder struct {
	rules []Rule
}

// NewResponder returns a responder over the built-in rule table.
func NewResponder() *Responder {
	return &Responder{rules: cloneRules(defaultRules)}
}

// Respond returns the response of the first matching rule, or the fallback text.
func (r *Responder) Respond(message string) string {
	if rule, ok := r.Match(message); ok {
		return rule.Response
	}
	return Fallback(message)
}

// Match returns the first rule triggered by message.
func (r *Responder) Match(message string) (Rule, bool) {
	lowered := strings.ToLower(message)
	for _, rule := range r.rules {
		if rule.Matches(lowered) {
			return rule, true
		}
	}
	return Rule{}, false
}

// Rules returns a copy of the rule table in priority order.
func (r *Responder) Rules() []Rule {
	return cloneRules(r.rules)
}

// Fallback renders the default answer, quoting the original message verbatim.
func Fallback(message string) string {
	return fmt.Sprintf(fallbackTemplate, message)
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, rule := range rules {
		rule.Triggers = append([]string(nil), rule.Triggers...)
		out[i] = rule
	}
	return out
}
