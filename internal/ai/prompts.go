package ai

const manualSystemPrompt = `Eres un experto en branding y marketing estratégico.
Tu tarea es crear manuales de marca profesionales, detallados y coherentes.
Debes generar un manual en formato JSON con la estructura exacta que se te solicita.
Sé creativo, específico y profesional.`

const manualPromptTemplate = `Crea un manual de marca completo y profesional para el siguiente producto:

**INFORMACIÓN DEL PRODUCTO:**
- Nombre: %s
- Descripción: %s
- Tipo de producto: %s
- Tono de comunicación: %s
- Público objetivo: %s

**ESTRUCTURA REQUERIDA (Responde SOLO con JSON válido):**

{
  "identidad_marca": {
    "proposito": "string (el propósito y misión del producto)",
    "valores": ["valor1", "valor2", "valor3"],
    "personalidad": "string",
    "diferenciador": "string (qué hace único a este producto)"
  },
  "tono_comunicacion": {
    "descripcion_general": "string",
    "palabras_permitidas": ["palabra1", "palabra2"],
    "palabras_prohibidas": ["palabra1", "palabra2"],
    "estilo_redaccion": "string",
    "uso_tecnicismos": true,
    "ejemplos_buenos": ["ejemplo1", "ejemplo2"],
    "ejemplos_malos": ["ejemplo1", "ejemplo2"]
  },
  "elementos_visuales": {
    "colores_principales": ["#HEX1", "#HEX2"],
    "colores_secundarios": ["#HEX3", "#HEX4"],
    "tipografia_principal": "string",
    "tipografia_secundaria": "string",
    "uso_logo": {
      "tamano_minimo": "string (ej: 10%% del ancho de la imagen)",
      "espaciado_minimo": "string (ej: 5%% del ancho del logo alrededor)",
      "posicion_permitida": ["posición1", "posición2"],
      "fondos_permitidos": ["fondo1", "fondo2"],
      "fondos_prohibidos": ["fondo1", "fondo2"],
      "elementos_adicionales": "string"
    },
    "estilo_fotografico": "string (iluminación, composición, tipo de tomas, mood, filtros)",
    "iconografia": "string",
    "composicion_visual": "string",
    "elementos_obligatorios": ["elemento1", "elemento2"],
    "elementos_prohibidos": ["elemento1", "elemento2"]
  },
  "publico_objetivo": {
    "demografia": {
      "edad": "string",
      "genero": "string",
      "ubicacion": "string",
      "nivel_socioeconomico": "string"
    },
    "psicografia": {
      "intereses": ["interés1", "interés2"],
      "valores": ["valor1", "valor2"],
      "estilo_vida": "string"
    },
    "pain_points": ["problema1", "problema2"],
    "aspiraciones": ["aspiración1", "aspiración2"]
  },
  "directrices_contenido": {
    "tipos_contenido": {
      "redes_sociales": {"longitud_ideal": "string", "hashtags": ["#tag1"], "frecuencia": "string"},
      "blog_articulos": {"longitud_ideal": "string", "estructura": "string", "temas_principales": ["tema1"]},
      "email_marketing": {"subject_line_style": "string", "longitud_ideal": "string", "call_to_action": ["CTA1"]}
    },
    "palabras_clave_seo": ["keyword1", "keyword2"],
    "mensajes_clave": ["mensaje1", "mensaje2"]
  },
  "ejemplos_aplicacion": {
    "descripcion_producto_buena": "string",
    "descripcion_producto_mala": "string",
    "post_redes_bueno": "string",
    "post_redes_malo": "string"
  }
}

IMPORTANTE:
- Responde ÚNICAMENTE con el JSON, sin texto adicional antes o después
- Asegúrate de que el JSON sea válido y esté completo
- Todos los campos deben tener contenido relevante y detallado`

const productDescriptionTemplate = `Eres un copywriter experto especializado en %s.

Tu tarea es crear una DESCRIPCIÓN DE PRODUCTO persuasiva y profesional.

CONTEXTO DEL MANUAL DE MARCA:
%s

INSTRUCCIONES:
1. Analiza las reglas del manual (tono, palabras prohibidas, estilo)
2. Si el manual prohíbe los tecnicismos, NO uses tecnicismos
3. Respeta las palabras permitidas y evita las prohibidas
4. Usa el tono especificado en el manual
5. Crea una descripción de 80-120 palabras
6. Destaca los beneficios clave del producto
%s
GENERA LA DESCRIPCIÓN:`

const videoScriptTemplate = `Eres un guionista experto en contenido de marca para %s.

Tu tarea es crear un GUION DE VIDEO de 30-45 segundos.

CONTEXTO DEL MANUAL DE MARCA:
%s

INSTRUCCIONES:
1. Analiza el tono de comunicación del manual
2. Identifica los mensajes clave y el público objetivo
3. Estructura el guion así:
   - GANCHO (3-5 segundos): captura la atención
   - DESARROLLO (20-30 segundos): presenta el producto o mensaje
   - CIERRE (5-8 segundos): llamado a la acción
4. Respeta el tono y estilo del manual
5. Usa lenguaje apropiado para el público objetivo
%s
GENERA EL GUION:`

const imagePromptTemplate = `Eres un experto en prompts para IA generativa de imágenes.

Tu tarea es crear un PROMPT ULTRA DETALLADO para generar una imagen promocional de %s que cumpla al 100%% con el manual de marca.

CONTEXTO DEL MANUAL DE MARCA:
%s

INSTRUCCIONES (cada punto es obligatorio):
1. COLORES: usa los colores principales y secundarios del manual (códigos HEX si existen) e indica dónde va cada uno.
2. LOGO: respeta tamaño mínimo, espaciado y una de las posiciones permitidas; indica la posición exacta.
3. COMPOSICIÓN: si el manual define composición visual, cópiala textualmente; describe centro, alrededores y fondo.
4. ESTILO FOTOGRÁFICO: iluminación, ángulo, distancia, mood y filtros.
5. ELEMENTOS OBLIGATORIOS: menciona cada uno explícitamente.
6. ELEMENTOS PROHIBIDOS: nunca los menciones, aunque el usuario los pida.
7. TIPOGRAFÍA: si hay texto en la imagen, usa el estilo de la tipografía principal.
8. FONDOS: usa explícitamente un fondo permitido.

CONTEXTO ADICIONAL: %s

FORMATO DEL PROMPT FINAL:
- Descripción fluida y narrativa, no una lista
- 250-350 palabras
- Empieza con "Crea una imagen..." e integra todos los puntos anteriores

AHORA GENERA EL PROMPT COMPLETO EN ESPAÑOL:`

const auditPromptTemplate = `Eres un auditor PROFESIONAL de identidad de marca. Analiza esta imagen y determina si cumple con el manual de marca.

%s

=== FRAGMENTOS RELEVANTES DEL MANUAL ===
%s

=== METODOLOGÍA DE AUDITORÍA ===

PASO 1 - DESCRIPCIÓN VISUAL: producto principal, colores dominantes, logo (posición y tamaño aparente), fondo, texto y tipografía, elementos adicionales.

PASO 2 - EVALUACIÓN POR CATEGORÍAS:
1. COLORES (0-25): los colores principales aparecen; tonos visualmente similares son aceptables; colores ajenos a la paleta restan 10 puntos.
2. LOGO Y BRANDING (0-30): logo visible (si no, -10), tamaño mínimo, espaciado, posición permitida (si no, -10), fondo permitido.
3. ESTILO FOTOGRÁFICO Y COMPOSICIÓN (0-20): iluminación, composición y mood del manual.
4. ELEMENTOS OBLIGATORIOS/PROHIBIDOS (0-15): falta un obligatorio -8; aparece un prohibido -15.
5. TIPOGRAFÍA Y TEXTO (0-10): estilo y tono del texto.

PASO 3 - CÁLCULO FINAL:
- score: suma de puntos (0-100)
- compliant: true si score >= %d, false en otro caso
- issues y recommendations en ESPAÑOL

RESPONDE SOLO CON JSON (sin markdown):
{
  "compliant": boolean,
  "score": number,
  "issues": ["string"],
  "recommendations": ["string"],
  "analysis": "string",
  "category_scores": {"colors": number, "branding": number, "photography_style": number, "elements": number, "typography": number}
}

El objetivo es evaluar si la imagen COMUNICA la marca correctamente, no si es pixel-perfect.`

const visionPingPrompt = "Responde solo con la palabra: OK"
