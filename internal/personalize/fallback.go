package personalize

import (
	"fmt"
	"strings"

	"github.com/jonathan/lead-enricher/internal/compliance"
	"github.com/jonathan/lead-enricher/internal/text"
	"github.com/jonathan/lead-enricher/internal/types"
)

// fallbackModel marks copy that was produced without a language model, either
// because no provider credentials were configured or every attempt failed.
const fallbackModel = "fallback"

var industryHooks = map[string]string{
	"technology":         "staying ahead of rapid innovation cycles",
	"financial_services": "balancing compliance with digital transformation",
	"healthcare":         "improving patient outcomes while managing costs",
	"gaming_media":       "scaling content delivery for demanding audiences",
	"manufacturing":      "optimizing operations with intelligent automation",
	"retail":             "personalizing customer experiences at scale",
	"government":         "modernizing services within strict mandates",
	"energy":             "driving efficiency through the energy transition",
	"telecommunications": "building the infrastructure for what comes next",
}

var goalIntros = map[string]string{
	"exploring":     "As you explore what AI can do for your organization",
	"evaluating":    "As you evaluate AI solutions for your team",
	"learning":      "As you deepen your understanding of enterprise AI",
	"building_case": "As you build the business case for AI investment",
}

var personaCTAs = map[string]string{
	"executive":         "See how industry leaders are turning AI readiness into competitive advantage.",
	"it_infrastructure": "Get the technical blueprint for AI-ready infrastructure.",
	"security":          "Learn how to deploy AI without compromising your security posture.",
	"data_ai":           "Discover the architecture patterns behind production AI systems.",
	"sales_gtm":         "Find out how AI-ready companies are accelerating revenue.",
	"hr_people":         "See how leading teams prepare their people for AI adoption.",
}

// fallbackShort builds deterministic intro/CTA copy from the context tables.
// Output always passes compliance so no correction pass is needed downstream.
func fallbackShort(profile *types.NormalizedProfile, userCtx types.UserContext) *types.PersonalizedCopy {
	firstName := userCtx.FirstName
	if firstName == "" {
		firstName = profile.DisplayName()
	}
	company := userCtx.CompanyName
	if company == "" {
		company = profile.CompanyName
	}
	if company == "" {
		company = "your organization"
	}

	industry := userCtx.Industry
	if industry == "" {
		industry = strings.ToLower(profile.Industry)
	}

	var intro string
	hook, ok := industryHooks[industry]
	if goalIntro, hasGoal := goalIntros[userCtx.Goal]; hasGoal && ok {
		intro = fmt.Sprintf("%s, %s is likely focused on %s.", goalIntro, company, hook)
	} else if hasGoal {
		intro = fmt.Sprintf("%s, this guide gives %s a practical starting point.", goalIntro, company)
	} else if ok {
		intro = fmt.Sprintf("Teams like %s are focused on %s, and this guide shows where to start.", company, hook)
	} else if firstName != "" {
		intro = fmt.Sprintf("Hi %s, this guide gives %s a practical starting point for enterprise AI.", firstName, company)
	} else {
		intro = compliance.SafeIntro(firstName)
	}

	cta, ok := personaCTAs[userCtx.Persona]
	if !ok {
		cta = compliance.SafeCTA()
	}

	return &types.PersonalizedCopy{
		IntroHook: text.Truncate(intro, compliance.MaxIntroLength),
		CTA:       text.Truncate(cta, compliance.MaxCTALength),
		ModelUsed: fallbackModel,
	}
}

var ebookHooksByGoal = map[string]string{
	"exploring":     "%s is at the start of its AI journey, and this guide maps the terrain%s.",
	"evaluating":    "As %s weighs its AI options%s, this guide lays out what separates leaders from the rest.",
	"learning":      "For %s, building AI fluency%s starts with understanding where the industry actually stands.",
	"building_case": "This guide gives %s the data points%s needed to make the internal case for AI investment.",
}

var ebookCTAsByPersonaGoal = map[string]string{
	"executive|exploring":         "Explore where %s stands against the 33%% of enterprises already leading on AI.",
	"executive|building_case":     "Bring %s's leadership team the benchmarks that justify the investment.",
	"it_infrastructure|exploring": "Map out the infrastructure %s will need before the first AI workload ships.",
	"security|exploring":          "See how %s can adopt AI while keeping its security posture intact.",
	"data_ai|exploring":           "Benchmark %s's data foundation against teams already running AI in production.",
	"sales_gtm|exploring":         "Learn how AI-ready companies like %s shorten their revenue cycles.",
	"hr_people|exploring":         "Prepare %s's workforce for the changes AI adoption brings.",
}

var ebookFramingByCase = map[string]string{
	"healthcare":    "KT Cloud shows what this path looks like in practice, cutting GPU costs by 72% while scaling AI services nationwide.",
	"financial":     "Smurfit Westrock's journey is instructive here, with supply chain optimization driving a 25% cost reduction.",
	"manufacturing": "Smurfit Westrock shows what this path looks like, with a 25% cost reduction and 30% lower emissions from AI-driven optimization.",
	"telecom_tech":  "KT Cloud's experience is directly relevant, achieving 72% GPU cost savings while expanding its AI platform.",
	"general":       "PQR's experience shows the payoff, reaching 40% faster deployment once the AI foundation was in place.",
}

// fallbackEbook builds deterministic ebook copy from the context tables.
func fallbackEbook(profile *types.NormalizedProfile, userCtx types.UserContext) *types.EbookCopy {
	company := userCtx.CompanyName
	if company == "" {
		company = profile.CompanyName
	}
	if company == "" {
		company = "your organization"
	}

	// Pick the most specific context fragment available for the hook.
	var fragment string
	switch {
	case profile.CompanyNews != nil && len(profile.CompanyNews.Themes) > 0:
		fragment = fmt.Sprintf(", with recent momentum around %s", profile.CompanyNews.Themes[0])
	case profile.EmployeeGrowthRate != nil && *profile.EmployeeGrowthRate > 0.2:
		fragment = " during a period of rapid growth"
	case profile.LatestFundingStage != "":
		fragment = fmt.Sprintf(" following its %s round", profile.LatestFundingStage)
	case profile.EmployeeCount != nil:
		fragment = fmt.Sprintf(" at %d-employee scale", *profile.EmployeeCount)
	case len(techSkills(profile.Skills)) > 0:
		fragment = " with a technical team already in place"
	}

	goal := userCtx.Goal
	hookTmpl, ok := ebookHooksByGoal[goal]
	if !ok {
		hookTmpl = ebookHooksByGoal["exploring"]
		goal = "exploring"
	}
	hook := fmt.Sprintf(hookTmpl, company, fragment)

	caseKey := caseStudyFor(userCtx.Industry, profile.Industry)
	framing := ebookFramingByCase[caseKey]
	if framing == "" {
		framing = ebookFramingByCase["general"]
	}

	ctaTmpl, ok := ebookCTAsByPersonaGoal[userCtx.Persona+"|"+goal]
	if !ok {
		ctaTmpl, ok = ebookCTAsByPersonaGoal[userCtx.Persona+"|exploring"]
	}
	if !ok {
		ctaTmpl = "Discover how %s can accelerate its path to AI readiness."
	}
	cta := fmt.Sprintf(ctaTmpl, company)

	return &types.EbookCopy{
		PersonalizedHook: text.Truncate(hook, maxHookLength),
		CaseStudyFraming: text.Truncate(framing, maxFramingLength),
		PersonalizedCTA:  text.Truncate(cta, maxEbookCTALength),
		ModelUsed:        fallbackModel,
	}
}
