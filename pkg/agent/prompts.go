package agent

// LEARNER_SENTINEL marks assistant messages that carry a pending learning
// offer. It is only used to strip offer text out of stored content; the
// LearnerAsked flag on the state is the control-flow source of truth.
const LEARNER_SENTINEL = "💡 Learner Agent"

// LEARNER_SEPARATOR splits an offered answer into the actual answer and the
// appended offer.
const LEARNER_SEPARATOR = "\n---\n"

// GENERAL_KNOWLEDGE_DISCLAIMER is the fixed opening sentence of every
// ungrounded answer.
const GENERAL_KNOWLEDGE_DISCLAIMER = "⚠️ **Note: This answer is based on general knowledge, not from the Knowledge Base.**"

const CORRECTION_PROMPT = `
User Message: "{query}"

Is the user providing a CORRECTION or IMPROVEMENT to the PREVIOUS code/answer?
Key distinctions:
- "Fix the join" -> YES (Correction)
- "This code is wrong" -> YES (Correction)
- "Save this" -> YES (Correction/Feedback)
- "Start a new query" -> NO (New Request)
- "How do I..." -> NO (New Request)
- "Give me a query for..." -> NO (New Request)

Answer ONLY: yes or no
`

const CONFIRMATION_PROMPT = `
Recent Conversation History:
{history}

The user was asked if a general knowledge answer worked for them.
User's response: "{query}"

Is the user confirming that the answer worked/was correct/helpful?
Confirmations: "yes", "correct", "worked", "it worked", "that's right", "perfect", "yes it's correct", etc.

Answer ONLY: yes or no
`

const INTENT_CLASSIFICATION_PROMPT = `
Classify this user message into ONE intent:
- greeting: Simple greetings, pleasantries, thanking
- general_chat: General conversation, small talk, vague questions
- clarification: Clarify previous response or follow-up questions
- correction: User is correcting the agent or providing an improved solution to remember
- technical: Hybris, SAP Commerce, FlexSearch, Impex, Groovy, technical solutions

User Message: "{query}"

Return only one word: greeting, general_chat, clarification, correction, or technical
`

const RETRIEVAL_PROMPT = `
You are a semantic search expert for Hybris/SAP Commerce queries.

User Query: "{query}"

Available Documents (with summaries):
{index}

Task: Select the top 5 most relevant Document IDs that could help answer this query.

Matching Guidelines:
- Match on semantic meaning using title, tags, AND summary
- "product query" matches "Product", "flexsearch", "product status", etc.
- Use summary to understand what lengthy code does
- LIMIT to top 5 documents max.
- ENTITY SPECIFICITY: If user asks for "Order", do NOT select "Product" documents unless they mention Orders.
- If documents are NOT relevant to the specific requested entity, return empty list [].
- Failure to filter irrelevant docs causes hallucinations.

Output ONLY a JSON array of document IDs (max 5). No explanation.
Format: ["id1", "id2", "id3", "id4", "id5"]
`

const GENERATION_PROMPT_KB = `
You are an expert Hybris Developer Agent. Be CONCISE and DIRECT.

Conversation History:
{history}

User Query: "{query}"

Knowledge Base Context:
{context}

Instructions:
1. RELEVANCE CHECK:
   - Check if the provided KB Context *actually* covers the user's specific request.
   - Example: If user asks for "Orders" but KB only has "Products", the KB is IRRELEVANT.
   - If KB is irrelevant, ignore it, answer using General Knowledge, and START with: "` + GENERAL_KNOWLEDGE_DISCLAIMER + `"

2. CITATIONS (Only if using KB):
   - You MUST cite the Source ID for every piece of information used from the KB.
   - Format: [Source: doc_id]
   - If using multiple docs, list ALL: [Source: doc_id_1, doc_id_2]
   - Place citations at the end of referenced sentences/code.

3. UNVERIFIED DOCS:
   - If using an unverified document, you MUST warn: "⚠️ Warning: Document [ID] is unverified."

4. Format:
   - Professional, concise.
   - Use Markdown.
   - ` + "```sql" + ` for FlexSearch.

Response:
`

const GENERATION_PROMPT_GENERAL = `
You are an expert Hybris Developer Agent. Be CONCISE and DIRECT.

Conversation History:
{history}

User Query: "{query}"

⚠️ IMPORTANT: The Knowledge Base does not contain information about this query.

Instructions:
1. Start with: "` + GENERAL_KNOWLEDGE_DISCLAIMER + `"
2. Provide answer based on Hybris/SAP Commerce knowledge
3. **PERSONALIZATION**: You CAN remember and use the user's name or details if they provided them in the chat history.
4. **DEFAULT TO FLEXSEARCH QUERIES** - Always use FlexSearch SQL syntax, NOT Java/Groovy code
5. **MAINTAIN CONTEXT**: Use the Conversation History to understand follow-up requests.
6. Be CONCISE - provide only the query/code needed, minimal explanation
7. Format: ` + "```sql" + ` for FlexSearch queries
8. Map terms correctly: 'product table' → Product item type, 'order' → Order item type

Response:
`

const GREETING_PROMPT = `
The user said: "{query}"

Respond warmly as a Hybris Developer AI Agent. Introduce yourself briefly and let them know you can help with:
- Generating FlexSearch queries
- Writing Groovy scripts for HAC
- Creating Impex data
- Answering Hybris/SAP Commerce questions

Keep it friendly and concise (2-3 sentences max).
`

const GENERAL_CHAT_PROMPT = `
You are a Hybris Developer AI Agent.
User: "{query}"

Respond naturally. If vague, ask clarifying questions about:
- Code generation (FlexSearch, Groovy, Impex)
- Technical explanation about Hybris
- Help with a specific Hybris feature

Keep it concise and helpful.
`

const LEARNER_OFFER_TEMPLATE = `

---

### 💡 Learner Agent

Since this answer was generated from general knowledge (not from our Knowledge Base), I'd like to learn from this interaction!

**Did this answer work for you?**

If this answer solved your problem, I can save it to the Knowledge Base for future reference. Just reply with "yes", "worked", or "correct" and I'll add it automatically!

This helps improve future responses! ✨
`

const LEARNER_OFFER_CORRECTION = `

---

### 💡 Learner Agent

I noticed you provided a correction or improvement! 🧠

**Would you like me to save this knowledge to the Knowledge Base?**

Reply "yes" or "save it" to confirm.
`

const LEARNER_SAVE_SUCCESS = `
✅ **Great! I've saved this to the Knowledge Base.**

**Document Details:**
- **ID:** {doc_id}
- **Title:** {title}
- **Tags:** {tags}
- **Status:** Unverified

[Source: {doc_id}]

**To edit or verify this document:**
1. Go to the **Knowledge Base** tab
2. Find the document (it will have a 🤖 "Added by AI" badge)
3. Click **Edit** to modify title, summary, tags, or content
4. Click **Verify** if the content is accurate

This will help improve future responses! 🎉
`

const LEARNER_SAVE_MISSING_CONTEXT = "Sorry, I couldn't find the previous conversation to save."

const LEARNER_SAVE_FAILURE = "Sorry, error while saving: {error}\nYou can manually save using the AI Extractor tab."
