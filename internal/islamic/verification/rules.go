package verification

import "github.com/halalcheck/halalcheck/internal/islamic"

// rule matches a lowercased ingredient name fragment to a canned result.
// Evaluation order is the slice order: first match wins.
type rule struct {
	match  string
	result islamic.VerificationResult
}

var rules = []rule{
	{
		match: "e471",
		result: islamic.VerificationResult{
			Confidence: 60,
			Method:     islamic.MethodCertificationBody,
			References: []islamic.Reference{
				{
					Source:      islamic.SourceContemporaryFatwa,
					Citation:    "JAKIM additive registry E471",
					Translation: "E471 of verified plant origin is certified halal.",
					School:      islamic.MadhabGeneral,
				},
			},
			Notes: "Most certified E471 batches are of plant-based origin; animal-derived batches require slaughter certification.",
		},
	},
	{
		match: "lecithin",
		result: islamic.VerificationResult{
			Confidence: 80,
			Method:     islamic.MethodDatabase,
			References: []islamic.Reference{
				{
					Source:      islamic.SourceScholarlyConsensus,
					Citation:    "IFANCA General Ruling 4",
					Translation: "Plant-derived lecithin is permissible.",
					School:      islamic.MadhabGeneral,
				},
			},
			Notes: "Commercial lecithin is predominantly soy-derived.",
		},
	},
	{
		match: "natural flavor",
		result: islamic.VerificationResult{
			Confidence: 45,
			Method:     islamic.MethodScholarlyConsultation,
			References: []islamic.Reference{
				{
					Source:      islamic.SourceContemporaryFatwa,
					Citation:    "AMJA Resolution 2019-4",
					Translation: "Undisclosed flavor compositions require source verification.",
					School:      islamic.MadhabGeneral,
				},
			},
			Notes: "Composition must be disclosed by the manufacturer before certification.",
		},
	},
	{
		match: "vanilla extract",
		result: islamic.VerificationResult{
			Confidence: 50,
			Method:     islamic.MethodContemporaryFatwa,
			References: []islamic.Reference{
				{
					Source:      islamic.SourceContemporaryFatwa,
					Citation:    "AMJA Resolution 2019-4",
					Translation: "Flavor extracts in an alcohol carrier are discouraged; residual alcohol must be negligible.",
					School:      islamic.MadhabGeneral,
				},
			},
			Notes: "Alcohol-free vanilla formulations are certifiable without restriction.",
		},
	},
	{
		match: "rennet",
		result: islamic.VerificationResult{
			Confidence: 55,
			Method:     islamic.MethodScholarlyConsultation,
			References: []islamic.Reference{
				{
					Source:      islamic.SourceScholarlyConsensus,
					Citation:    "OIC Fiqh Academy Resolution 23",
					Translation: "Enzymes from lawfully slaughtered animals or microbial culture are permissible.",
					School:      islamic.MadhabGeneral,
				},
			},
			Notes: "Microbial rennet is certifiable; animal rennet requires slaughter certification.",
		},
	},
	{
		match: "gelatin",
		result: islamic.VerificationResult{
			Confidence: 50,
			Method:     islamic.MethodCertificationBody,
			References: []islamic.Reference{
				{
					Source:      islamic.SourceScholarlyConsensus,
					Citation:    "OIC Fiqh Academy Resolution 23",
					Translation: "Gelatin from lawful sources is permissible.",
					School:      islamic.MadhabGeneral,
				},
			},
			Notes: "Source species and slaughter certification determine the ruling.",
		},
	},
	{
		match: "glycerin",
		result: islamic.VerificationResult{
			Confidence: 55,
			Method:     islamic.MethodDatabase,
			References: []islamic.Reference{
				{
					Source:      islamic.SourceContemporaryFatwa,
					Citation:    "European Halal Authority Bulletin 7",
					Translation: "Glycerin requires source verification; plant-derived is permissible.",
					School:      islamic.MadhabGeneral,
				},
			},
			Notes: "Declared vegetable glycerin is certifiable without restriction.",
		},
	},
	{
		match: "whey",
		result: islamic.VerificationResult{
			Confidence: 55,
			Method:     islamic.MethodDatabase,
			References: []islamic.Reference{
				{
					Source:      islamic.SourceScholarlyConsensus,
					Citation:    "OIC Fiqh Academy Resolution 23",
					Translation: "Dairy byproducts follow the ruling of their coagulant.",
					School:      islamic.MadhabGeneral,
				},
			},
			Notes: "Whey from microbial-rennet cheese production is certifiable.",
		},
	},
}

// certificationBody is a simulated external halal certification authority.
type certificationBody struct {
	name        string
	region      string
	credibility int
}

var bodies = []certificationBody{
	{"JAKIM", "Malaysia", 98},
	{"MUI", "Indonesia", 95},
	{"HFA", "United Kingdom", 92},
	{"IFANCA", "United States", 90},
	{"HMC", "United Kingdom", 85},
}

func findBody(name string) (certificationBody, bool) {
	for _, body := range bodies {
		if body.name == name {
			return body, true
		}
	}
	return certificationBody{}, false
}
