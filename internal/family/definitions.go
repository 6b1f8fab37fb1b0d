package family

import "jobscout/internal/filter"

// etlSkills gates data-scientist postings on pipeline exposure. Matching
// is substring based; multi-word entries match as phrases.
var etlSkills = []string{
	"etl",
	"sql",
	"python",
	"airflow",
	"spark",
	"data pipeline",
	"data warehouse",
	"dbt",
	"snowflake",
	"redshift",
	"bigquery",
	"kafka",
}

// Definitions returns the job families scanned on every run, in the
// fixed order the orchestrator executes them.
func Definitions() []Family {
	return []Family{
		{
			Name: "Data Engineer",
			Terms: []string{
				"Data Engineer",
				"Senior Data Engineer",
				"Big Data Engineer",
				"Data Platform Engineer",
			},
		},
		{
			Name: "Analytics Engineer",
			Terms: []string{
				"Analytics Engineer",
				"Senior Analytics Engineer",
				"Lead Analytics Engineer",
				"BI Engineer",
			},
		},
		{
			Name: "Data Scientist (ETL)",
			Terms: []string{
				"Data Scientist",
				"Data Scientist ETL",
				"Data Scientist SQL",
				"Data Scientist Python",
				"Machine Learning Engineer",
			},
			SkillGate: filter.NewSkillMatcher(etlSkills, filter.DefaultMinSkills),
		},
	}
}
