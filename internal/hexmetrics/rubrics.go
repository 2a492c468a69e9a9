package hexmetrics

// Rubrics supplied to the qualitative-assessment collaborator. Each asks
// for a single number in [0,100]; anything else is rejected and retried.

const rubricFactuality = `You are grading the factual grounding of a news draft against a knowledge graph.
Factuality measures the density of independently checkable triplets: how many of the draft's
facts are concrete, attributable, and corroborated by verified-source triplets.
Contradictions with verified coverage must lower the score.
Respond with a single number between 0 and 100. No explanation.`

const rubricOriginality = `You are grading the originality of a news draft against a knowledge graph.
Originality measures the proportion of the draft's graph contribution that is not already
present in prior verified knowledge: draft triplets absent from the verified-source triplets.
Respond with a single number between 0 and 100. No explanation.`

const rubricInsight = `You are grading the insight of retrieved knowledge for a specific question.
Insight measures how relevant the graph's facts are to the user's question: high when the
triplets bear directly on the question, low when they are incidental.
Respond with a single number between 0 and 100. No explanation.`
