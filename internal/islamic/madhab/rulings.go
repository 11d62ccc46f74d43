package madhab

import "github.com/halalcheck/halalcheck/internal/islamic"

// rulingCategory groups the four school positions for one ingredient family.
// Keyword order matters: the first matching category wins.
type rulingCategory struct {
	name           string
	keywords       []string
	recommendation string
	rulings        []islamic.MadhabRuling
}

var categories = []rulingCategory{
	{
		name:           "insects",
		keywords:       []string{"cochineal", "carmine", "shellac", "insect", "e120"},
		recommendation: "Hanafi consumers should avoid insect-derived additives; others may accept them with source disclosure.",
		rulings: []islamic.MadhabRuling{
			{
				Madhab:     islamic.MadhabHanafi,
				Ruling:     islamic.StatusHaram,
				Confidence: 90,
				Reasoning:  "Insects are khabaith (repugnant) and impermissible to consume.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceScholarlyConsensus,
						Citation:    "Al-Hidayah, Kitab al-Dhaba'ih",
						Translation: "Creatures without flowing blood are not lawful to eat.",
						School:      islamic.MadhabHanafi,
					},
				},
				Scholars: []string{"Al-Marghinani"},
			},
			{
				Madhab:     islamic.MadhabMaliki,
				Ruling:     islamic.StatusMashbooh,
				Confidence: 70,
				Reasoning:  "Insects may be eaten if killed first; processed derivatives carry doubt.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceScholarlyConsensus,
						Citation:    "Mukhtasar Khalil, Dhaba'ih",
						Translation: "Locusts and the like are permitted with prior killing.",
						School:      islamic.MadhabMaliki,
					},
				},
			},
			{
				Madhab:     islamic.MadhabShafi,
				Ruling:     islamic.StatusHalal,
				Confidence: 65,
				Reasoning:  "Derived pigments lose the ruling of their origin after transformation (istihala).",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceContemporaryFatwa,
						Citation:    "Dar al-Ifta al-Misriyyah 2011/455",
						Translation: "Transformed insect derivatives in trace amounts are tolerated.",
						School:      islamic.MadhabShafi,
					},
				},
			},
			{
				Madhab:     islamic.MadhabHanbali,
				Ruling:     islamic.StatusMashbooh,
				Confidence: 70,
				Reasoning:  "Default prohibition of insects with recognized exceptions; derivatives remain doubtful.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceScholarlyConsensus,
						Citation:    "Al-Mughni, Kitab al-At'imah",
						Translation: "What lacks flowing blood is disapproved except the locust.",
						School:      islamic.MadhabHanbali,
					},
				},
			},
		},
	},
	{
		name:           "alcohol in food processing",
		keywords:       []string{"alcohol", "ethanol", "wine", "vanilla extract", "liquor"},
		recommendation: "Prefer alcohol-free formulations; residual carrier alcohol is treated strictly.",
		rulings: []islamic.MadhabRuling{
			{
				Madhab:     islamic.MadhabHanafi,
				Ruling:     islamic.StatusMashbooh,
				Confidence: 70,
				Reasoning:  "Non-grape industrial alcohol below intoxicating use may be tolerated as a processing aid.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceScholarlyConsensus,
						Citation:    "Radd al-Muhtar, Kitab al-Ashriba",
						Translation: "Prohibition attaches to the intoxicating quantity of non-khamr liquors.",
						School:      islamic.MadhabHanafi,
					},
				},
			},
			{
				Madhab:     islamic.MadhabMaliki,
				Ruling:     islamic.StatusHaram,
				Confidence: 85,
				Reasoning:  "What intoxicates in quantity is prohibited in any amount.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceHadith,
						Citation:    "Sunan al-Tirmidhi 1865",
						Translation: "Whatever intoxicates in large amounts, a small amount of it is forbidden.",
						School:      islamic.MadhabMaliki,
					},
				},
			},
			{
				Madhab:     islamic.MadhabShafi,
				Ruling:     islamic.StatusHaram,
				Confidence: 85,
				Reasoning:  "Added alcohol renders the food impermissible regardless of quantity.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceHadith,
						Citation:    "Sunan al-Tirmidhi 1865",
						Translation: "Whatever intoxicates in large amounts, a small amount of it is forbidden.",
						School:      islamic.MadhabShafi,
					},
				},
			},
			{
				Madhab:     islamic.MadhabHanbali,
				Ruling:     islamic.StatusHaram,
				Confidence: 85,
				Reasoning:  "Deliberately added intoxicant is prohibited in any quantity.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceHadith,
						Citation:    "Sunan Abu Dawud 3681",
						Translation: "Every intoxicant is khamr, and every khamr is forbidden.",
						School:      islamic.MadhabHanbali,
					},
				},
			},
		},
	},
	{
		name:           "non-muslim slaughter",
		keywords:       []string{"slaughter", "meat", "chicken", "beef", "poultry", "lamb"},
		recommendation: "Require slaughter certification from a recognized body for all meat inputs.",
		rulings: []islamic.MadhabRuling{
			{
				Madhab:     islamic.MadhabHanafi,
				Ruling:     islamic.StatusMashbooh,
				Confidence: 75,
				Reasoning:  "Meat of the People of the Book is conditionally lawful; modern industrial slaughter raises doubt.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceQuran,
						Citation:    "Q5:5",
						Translation: "The food of those who were given the Scripture is lawful for you.",
						School:      islamic.MadhabHanafi,
					},
				},
			},
			{
				Madhab:     islamic.MadhabMaliki,
				Ruling:     islamic.StatusMashbooh,
				Confidence: 75,
				Reasoning:  "Conditional permissibility with doubt over mechanical slaughter and stunning.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceQuran,
						Citation:    "Q5:5",
						Translation: "The food of those who were given the Scripture is lawful for you.",
						School:      islamic.MadhabMaliki,
					},
				},
			},
			{
				Madhab:     islamic.MadhabShafi,
				Ruling:     islamic.StatusMashbooh,
				Confidence: 75,
				Reasoning:  "Valid slaughter requires the tasmiyah conditions to be established, not presumed.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceQuran,
						Citation:    "Q6:121",
						Translation: "Do not eat of that over which the name of Allah has not been mentioned.",
						School:      islamic.MadhabShafi,
					},
				},
			},
			{
				Madhab:     islamic.MadhabHanbali,
				Ruling:     islamic.StatusMashbooh,
				Confidence: 75,
				Reasoning:  "Certification is required where slaughter practice is unknown.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceQuran,
						Citation:    "Q6:121",
						Translation: "Do not eat of that over which the name of Allah has not been mentioned.",
						School:      islamic.MadhabHanbali,
					},
				},
			},
		},
	},
	{
		name:           "gelatin and animal derivatives",
		keywords:       []string{"gelatin", "gelatine", "collagen", "rennet", "whey"},
		recommendation: "Accept only derivatives certified from permissible, lawfully slaughtered sources.",
		rulings: []islamic.MadhabRuling{
			{
				Madhab:     islamic.MadhabHanafi,
				Ruling:     islamic.StatusMashbooh,
				Confidence: 70,
				Reasoning:  "Complete chemical transformation can lift the origin ruling, but completeness is disputed for gelatin.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceScholarlyConsensus,
						Citation:    "OIC Fiqh Academy Resolution 23",
						Translation: "Gelatin from lawful sources is permissible; transformation of unlawful sources is disputed.",
						School:      islamic.MadhabHanafi,
					},
				},
			},
			{
				Madhab:     islamic.MadhabMaliki,
				Ruling:     islamic.StatusMashbooh,
				Confidence: 70,
				Reasoning:  "Origin animal and slaughter status govern the derivative.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceScholarlyConsensus,
						Citation:    "OIC Fiqh Academy Resolution 23",
						Translation: "Gelatin from lawful sources is permissible.",
						School:      islamic.MadhabMaliki,
					},
				},
			},
			{
				Madhab:     islamic.MadhabShafi,
				Ruling:     islamic.StatusMashbooh,
				Confidence: 70,
				Reasoning:  "Istihala is accepted narrowly; gelatin does not clearly qualify.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceScholarlyConsensus,
						Citation:    "OIC Fiqh Academy Resolution 23",
						Translation: "Gelatin from lawful sources is permissible.",
						School:      islamic.MadhabShafi,
					},
				},
			},
			{
				Madhab:     islamic.MadhabHanbali,
				Ruling:     islamic.StatusMashbooh,
				Confidence: 70,
				Reasoning:  "Doubtful origin keeps the derivative doubtful.",
				References: []islamic.Reference{
					{
						Source:      islamic.SourceScholarlyConsensus,
						Citation:    "OIC Fiqh Academy Resolution 23",
						Translation: "Gelatin from lawful sources is permissible.",
						School:      islamic.MadhabHanbali,
					},
				},
			},
		},
	},
}
