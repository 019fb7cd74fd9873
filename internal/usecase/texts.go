package usecase

// Canned replies for the non-order intents.

const welcomeText = `🌿 **Welcome to Alchemy Chemicals!**

I'm your quotation assistant for premium herbal extracts.

**Our products:**
• Ashwagandha Extract
• Boswellia Extract
• Curcumin Extract
• Neem Extract
• Tulsi Extract

Just tell me what you need, for example:
*"I need 50kg Ashwagandha 5%, pharmaceutical grade, delivery to Mumbai"*

Type /catalog to see the full price list, or /help for more.`

const helpText = `📖 **How to get a quotation**

Tell me your order in plain words. I need five details:
• **Product** — e.g. Ashwagandha, Curcumin
• **Specification** — concentration like 5% or 95%
• **Quantity** — in kg
• **Grade** — Pharmaceutical, Cosmetic or Food
• **Delivery city** — Mumbai, Delhi, Bangalore, Pune or Local pickup

You can give everything at once or piece by piece, I'll keep track.

**Commands:**
/start — restart the conversation
/catalog — full product catalog and pricing structure
/order — show what I have for your current order
/newquote — start a fresh quotation
/help — this message`

const thanksText = `You're welcome! 🙏 Happy to help anytime.

Type /newquote whenever you need another quotation.`
