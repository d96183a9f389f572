package ats

// Prompt templates for the candidate roadmap and the recruiter report. Both
// demand bare JSON; the fence stripping in llm handles models that add
// markdown anyway.

const roadmapPrompt = `You are a senior career coach. The candidate knows: %s
They are missing: %s
Assume 2 hours/day of study.

Return ONLY valid JSON (no markdown):
{
  "overall": {
    "total_days":75,"total_weeks":11,"hours_per_day":2,"difficulty":"Moderate",
    "summary":"One motivating sentence","recommended_order":["skill1","skill2"],"quick_wins":["skills under 2 weeks"]
  },
  "skills": [
    {
      "skill":"skill_name","why_important":"1 sentence","priority":"critical","difficulty":"moderate",
      "time_estimate":{"beginner_days":10,"intermediate_days":15,"expert_days":20,"total_days":45,"time_note":"2 hrs/day"},
      "approach":[
        {"step":1,"action":"Docs + beginner tutorial","duration":"Days 1-10"},
        {"step":2,"action":"Build 2-3 small projects","duration":"Days 11-25"},
        {"step":3,"action":"Production patterns + interview prep","duration":"Days 26-45"}
      ],
      "phases":[
        {"phase":"beginner","days":"Days 1-10","daily_focus":"Core syntax","daily_goal":"Follow tutorial","phase_outcome":"Write basic programs"},
        {"phase":"intermediate","days":"Days 11-25","daily_focus":"Real projects","daily_goal":"Build weekly project","phase_outcome":"Working project"},
        {"phase":"expert","days":"Days 26-45","daily_focus":"Advanced patterns","daily_goal":"Production codebases","phase_outcome":"Job-ready"}
      ],
      "milestones":["Write without syntax lookup","Deploy a project","Explain architecture","Debug real usage"],
      "tips":{"do":["Code along tutorials","Build meaningful projects"],"dont":["Read without coding","Skip beginner phase"]},
      "courses":{
        "beginner":[{"title":"Title","channel":"freeCodeCamp","search_query":"YouTube query","duration":"4 hours","what_you_learn":"Brief description"}],
        "intermediate":[{"title":"Title","channel":"Traversy Media","search_query":"YouTube query","duration":"6 hours","what_you_learn":"Brief description"}],
        "expert":[{"title":"Title","channel":"Fireship","search_query":"YouTube query","duration":"8 hours","what_you_learn":"Brief description"}]
      }
    }
  ]
}
Rules: priority: critical|high|medium|low | difficulty: easy|moderate|hard|very hard
Use real YouTube channels. 1-2 courses per stage.`

const recruiterPrompt = `You are a senior technical recruiter.
Resume skills: %s | JD required: %s
Matched: %s | Missing: %s
Skill match: %s%% | Semantic: %v/100 | ATS: %v/100
Flags: %s
Resume: %s
JD: %s

Return ONLY valid JSON (no markdown):
{
  "verdict":"Strong Hire | Good Candidate | Maybe | Needs Improvement | Reject",
  "verdict_reason":"1-2 sentence justification",
  "overall_score":82,
  "scores":{"skill_match":85,"experience_relevance":78,"communication_clarity":80,"technical_depth":75,"culture_fit_indicators":70},
  "candidate_summary":"3-4 sentence summary",
  "strengths":["s1","s2","s3"],
  "red_flags":["f1","f2"],
  "skill_match_breakdown":{"matched":["s1"],"missing_critical":["s2"],"missing_nice_to_have":["s3"],"bonus_skills":["s4"]},
  "interview_questions":[{"question":"...","reason":"why"}],
  "hiring_recommendation":"2-3 sentence recommendation",
  "salary_band_fit":"entry | mid | senior | lead"
}`
