package llm

// Prompts for the domain operations. Every prompt demands a strict output
// shape; the parsers in client.go tolerate stray prose but reject output
// with no parseable payload.

const systemDecompose = `You break down news claims into atomic, independently checkable facts.
Always answer with a JSON array of strings and nothing else.`

const promptDecompose = `Decompose the following claim into atomic sub-claims, each expressing exactly
one checkable fact. Keep the original language of the claim.

Claim: %s

Answer with a JSON array of strings, e.g. ["fact one", "fact two"].`

const promptRefine = `A sub-claim could not be verified with enough confidence. Generate 1-3 narrower
follow-up sub-claims that would close the evidence gap. Keep the original language.

Sub-claim: %s
Evidence so far: %s

Answer with a JSON array of strings.`

const systemClassify = `You route claims to verification tools. Answer with exactly one word:
"knowledge_search" for claims about facts, people, events, or statements;
"code_interpreter" for claims requiring arithmetic, statistics, or logical computation.`

const promptClassify = `Claim: %s

Tool:`

const systemExtract = `You extract knowledge triplets from news text.
Always answer with a JSON array of objects with keys "subject", "relation", "object", nothing else.
Relations should be short attribute names (e.g. "형량", "date", "amount"), objects the attribute values.`

const promptExtract = `Extract every factual (subject, relation, object) triplet from this text:

%s

Answer with a JSON array, e.g. [{"subject": "강영권", "relation": "형량", "object": "징역 3년"}].`
